package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, text
	ServiceName string
	Version     string
	Environment string // dev, staging, prod, test
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// ForEnvironment returns the defaults used when LOG_LEVEL and LOG_FORMAT are
// not set: JSON at info in staging and production, text at debug with source
// locations everywhere else.
func ForEnvironment(environment, serviceName, version string) Config {
	switch environment {
	case EnvironmentProduction, EnvironmentStaging:
		return NewConfig(LogLevelInfo, LogFormatJSON, serviceName, version, environment, false)
	default:
		return NewConfig(LogLevelDebug, LogFormatText, serviceName, version, environment, true)
	}
}

// LogLevel converts the level name to a slog.Level, defaulting to info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every line
func (c Config) BaseAttributes() []slog.Attr {
	attrs := []slog.Attr{slog.String(AttrKeyService, c.ServiceName)}
	if c.Version != "" {
		attrs = append(attrs, slog.String(AttrKeyVersion, c.Version))
	}
	if c.Environment != "" {
		attrs = append(attrs, slog.String(AttrKeyEnvironment, c.Environment))
	}
	return attrs
}
