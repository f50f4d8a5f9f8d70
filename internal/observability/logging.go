// Package observability builds the zap loggers shared by the skirmish binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/config"
)

// encoders maps a logging.format value to its zap encoding and encoder config.
var encoders = map[string]func() (string, zapcore.EncoderConfig){
	"json": func() (string, zapcore.EncoderConfig) {
		return "json", zap.NewProductionEncoderConfig()
	},
	"console": func() (string, zapcore.EncoderConfig) {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return "console", enc
	},
}

// NewLogger builds a logger for one binary. Every entry carries a "service"
// field when service is non-empty. Output goes to stderr; stdout belongs to
// command results such as cmd/simulate's JSON.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, service string) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	newEncoder, ok := encoders[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	encoding, encCfg := newEncoder()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	zapCfg := zap.Config{
		Level:             level,
		Development:       cfg.Format == "console",
		DisableStacktrace: cfg.Format == "json",
		Encoding:          encoding,
		EncoderConfig:     encCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if service != "" {
		zapCfg.InitialFields = map[string]interface{}{"service": service}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger for %s: %w", service, err)
	}
	return logger, nil
}
