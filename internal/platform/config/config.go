// Package config provides configuration loading and validation for the
// appraisal tooling. Configuration is layered: defaults -> base.yaml ->
// {profile}.yaml -> env vars.
package config

// Config holds all configuration for goldcheck.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Appraisal AppraisalConfig `koanf:"appraisal"`
	SelfTest  SelfTestConfig  `koanf:"selftest"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AppraisalConfig holds the defaults applied by the appraiser when a caller
// does not override them.
type AppraisalConfig struct {
	PerGram       int  `koanf:"per_gram"`
	IncludeMarkup bool `koanf:"include_markup"`
}

// SelfTestConfig controls how the self-test report is rendered.
type SelfTestConfig struct {
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
