// Package config has the configuration for the interactions checker
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment the process runs in
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
)

func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment maps an ENV value, including long forms, to an Environment
func ParseEnvironment(value string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	}
	return EnvDevelopment, fmt.Errorf("ENV must be one of: %v, got: %s",
		[]Environment{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}, value)
}

const (
	DefaultLookupURL      = "https://www.medscape.com/api/quickreflookup/LookupService.ashx"
	DefaultInteractionURL = "https://reference.medscape.com/druginteraction.do"
)

// Config holds all application configuration
type Config struct {
	Port           string
	Address        string
	Env            Environment
	LogLevel       string
	LogDir         string // Empty disables the JSON log file
	MaxRequestBody int64  // Maximum request body size in bytes
	MaxHeaderSize  int64  // Maximum header size in bytes

	LookupURL       string
	InteractionURL  string
	UpstreamTimeout time.Duration
	ResolveWorkers  int

	ProbeInterval   time.Duration
	ProbeMedication string
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8000"),
		Address:         getEnvWithDefault("ADDRESS", "127.0.0.1"),
		LogLevel:        strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		LogDir:          os.Getenv("LOG_DIR"),
		MaxRequestBody:  getInt64EnvWithDefault("MAX_REQUEST_BODY", 1048576), // 1MB default
		MaxHeaderSize:   getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),  // 1MB default
		LookupURL:       getEnvWithDefault("MEDSCAPE_LOOKUP_URL", DefaultLookupURL),
		InteractionURL:  getEnvWithDefault("MEDSCAPE_INTERACTION_URL", DefaultInteractionURL),
		UpstreamTimeout: time.Duration(getIntEnvWithDefault("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		ResolveWorkers:  getIntEnvWithDefault("RESOLVE_WORKERS", 1),
		ProbeInterval:   time.Duration(getIntEnvWithDefault("PROBE_INTERVAL_MINUTES", 15)) * time.Minute,
		ProbeMedication: getEnvWithDefault("PROBE_MEDICATION", "aspirin"),
	}

	env, err := ParseEnvironment(getEnvWithDefault("ENV", string(EnvDevelopment)))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}
	cfg.Env = env

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	if err := validateEndpoint(cfg.LookupURL); err != nil {
		return fmt.Errorf("invalid MEDSCAPE_LOOKUP_URL: %w", err)
	}

	if err := validateEndpoint(cfg.InteractionURL); err != nil {
		return fmt.Errorf("invalid MEDSCAPE_INTERACTION_URL: %w", err)
	}

	if cfg.UpstreamTimeout <= 0 || cfg.UpstreamTimeout > 5*time.Minute {
		return fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS: must be between 1 and 300, got: %s", cfg.UpstreamTimeout)
	}

	if cfg.ResolveWorkers < 1 || cfg.ResolveWorkers > 16 {
		return fmt.Errorf("invalid RESOLVE_WORKERS: must be between 1 and 16, got: %d", cfg.ResolveWorkers)
	}

	if cfg.ProbeInterval < time.Minute {
		return fmt.Errorf("invalid PROBE_INTERVAL_MINUTES: must be at least 1, got: %s", cfg.ProbeInterval)
	}

	if strings.TrimSpace(cfg.ProbeMedication) == "" {
		return fmt.Errorf("invalid PROBE_MEDICATION: cannot be empty")
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	// Containers bind the unspecified address behind a proxy
	if !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env Environment) error {
	if env == "" {
		return fmt.Errorf("ENV cannot be empty")
	}

	validEnvs := []Environment{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}
	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateSizeLimit validates size limit configuration values
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateEndpoint checks an upstream endpoint is an absolute http(s) URL
func validateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got: %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}

	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"MEDSCAPE_LOOKUP_URL",
		"MEDSCAPE_INTERACTION_URL",
		"UPSTREAM_TIMEOUT_SECONDS",
		"RESOLVE_WORKERS",
		"PROBE_INTERVAL_MINUTES",
		"PROBE_MEDICATION",
	}
}
