// Package logutil holds the process-wide zap logger used by the containers and the bench tool.
package logutil

import (
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig describes where and how to log. An empty Filename logs to stderr.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // console | json
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"` // megabytes before rotation
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

// DefaultLogConfig returns a console logger at info level.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: "console",
	}
}

// OrDefault returns DefaultLogConfig if c is nil, otherwise normalizes c.
func (c *LogConfig) OrDefault() *LogConfig {
	if c == nil {
		return DefaultLogConfig()
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	return c
}

var gLogger atomic.Pointer[zap.Logger]

func init() {
	logger, err := NewLogger(DefaultLogConfig())
	if err != nil {
		logger = zap.NewNop()
	}
	gLogger.Store(logger)
}

// NewLogger builds a logger from cfg without installing it.
func NewLogger(cfg *LogConfig, opts ...zap.Option) (*zap.Logger, error) {
	cfg = cfg.OrDefault()
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}
	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console":
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, errors.Errorf("unsupported log format %q", cfg.Format)
	}
	var syncer zapcore.WriteSyncer
	if cfg.Filename != "" {
		syncer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxDays,
			MaxBackups: cfg.MaxBackups,
		})
	} else {
		syncer = zapcore.Lock(os.Stderr)
	}
	core := zapcore.NewCore(encoder, syncer, zap.NewAtomicLevelAt(level))
	opts = append([]zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel)}, opts...)
	return zap.New(core, opts...), nil
}

// SetupLogger builds a logger from cfg and installs it globally.
func SetupLogger(cfg *LogConfig) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	SetGlobalLogger(logger)
	return nil
}

// GetGlobalLogger returns the installed logger.
func GetGlobalLogger() *zap.Logger {
	return gLogger.Load()
}

// SetGlobalLogger installs logger and returns the previous one.
func SetGlobalLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gLogger.Swap(logger)
}

func Debug(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}

// Fatal logs and then runs the logger's fatal hook, which exits the process unless a test
// installed a panicking hook.
func Fatal(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Fatal(msg, fields...)
}
