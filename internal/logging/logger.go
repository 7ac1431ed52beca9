// Package logging builds the zap logger used across pokesearch
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New creates a console logger at level. Output goes to logFile when set, stderr otherwise.
// The returned close func flushes the logger and releases the log file; the logger
// must not be used after it.
func New(level, logFile string) (*zap.Logger, func() error, error) {
	if logFile == "" {
		logger := NewWithWriter(level, os.Stderr)
		return logger, func() error {
			_ = logger.Sync() // nolint:errcheck // stderr sync fails on some terminals
			return nil
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := NewWithWriter(level, file)
	return logger, func() error {
		return multierr.Append(logger.Sync(), file.Close())
	}, nil
}

// NewWithWriter creates a console logger writing to w
func NewWithWriter(level string, w io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = " | "

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		ParseLevel(level),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
