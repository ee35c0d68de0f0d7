// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by the
// self-test runner and cmd/goldcheck.
package ports
