package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/config"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// SetupLogger initializes the application logger with file and stdout output.
// It creates the log directory, prunes old log files and installs a slog
// default that writes to both.
// Returns the log file handle (caller must close) and any error encountered.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
	}

	// Environment picks source locations; level and format come from config
	lcfg := logger.ForEnvironment(cfg.Environment, cfg.ServiceName, cfg.Version)
	lcfg.Level, lcfg.Format = cfg.LogLevel, cfg.LogFormat
	logger.InitLoggerWithWriter(lcfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "level", lcfg.LogLevel(), "file", logFileName)
	slog.Info(LogMsgStartingLuckyDraw,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"participants_path", cfg.ParticipantsPath,
		"prizes_path", cfg.PrizesPath,
		"max_sessions", cfg.MaxSessions,
		"session_ttl", cfg.SessionTTL,
		"api_key_set", cfg.APIKey != "")

	return logFile, nil
}

// cleanupLogs removes old log files so that at most keep remain.
// Timestamped names sort chronologically.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", LogMsgFailedDeleteOldLog, name, err)
		}
	}
}
