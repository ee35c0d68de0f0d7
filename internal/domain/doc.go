// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/gold). This root package
// holds sentinel errors and the validation error type shared by all entities.
package domain
