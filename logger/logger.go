package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base *zap.SugaredLogger
	once sync.Once
)

// Init builds the global structured logger. Production JSON output by
// default; set LOG_PRETTY=1 for console encoding during development.
func Init() {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		if os.Getenv("LOG_PRETTY") == "1" {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		z, err := cfg.Build()
		if err != nil {
			z = zap.NewNop()
		}
		base = z.Sugar()
	})
}

// L returns the global logger, initializing it on first use.
func L() *zap.SugaredLogger {
	if base == nil {
		Init()
	}
	return base
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
