package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	// APIKey protects the /api routes when set
	APIKey         string
	TrustedProxies []string

	// Default datasets used when a session is created without inline data
	ParticipantsPath string
	PrizesPath       string

	SessionTTL  time.Duration
	MaxSessions int

	// RandomSeed switches the draw engine to a reproducible picker
	RandomSeed    uint64
	HasRandomSeed bool

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:           strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:              getEnv(EnvLogDir, DefaultLogDir),
		Environment:         getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:         getEnv(EnvServiceName, DefaultServiceName),
		Version:             getEnv(EnvVersion, DefaultVersion),
		APIKey:              getEnv(EnvAPIKey, ""),
		TrustedProxies:      getEnvAsList(EnvTrustedProxies),
		ParticipantsPath:    getEnv(EnvParticipantsPath, DefaultParticipantsPath),
		PrizesPath:          getEnv(EnvPrizesPath, DefaultPrizesPath),
		SessionTTL:          getEnvAsDuration(EnvSessionTTL, DefaultSessionTTL),
		MaxSessions:         getEnvAsInt(EnvMaxSessions, DefaultMaxSessions),
		EventMaxRetries:     getEnvAsInt(EnvEventMaxRetries, DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration(EnvEventRetryDelay, DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv(EnvEventDeadLetterPath, DefaultEventDeadLetterPath),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvPort, err)
	}
	cfg.Port = port

	if seed, ok := os.LookupEnv(EnvRandomSeed); ok && seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvRandomSeed, err)
		}
		cfg.RandomSeed = v
		cfg.HasRandomSeed = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports configuration values that would make the server unusable
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 0 and 65535, got %d", EnvPort, c.Port))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxSessions, c.MaxSessions))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", EnvSessionTTL, c.SessionTTL))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("%s must be json or text, got %q", EnvLogFormat, c.LogFormat))
	}
	if c.HasRandomSeed && c.IsProduction() {
		errs = append(errs, fmt.Errorf("%s must not be set in production, seeded draws are predictable", EnvRandomSeed))
	}
	if c.EventMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvEventMaxRetries, c.EventMaxRetries))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in a production environment
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back on absence or error
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.Duration variable, falling back on absence or error
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty items
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
