package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/PedrohFolster/inkspiration/internal/config"
)

// New builds the process logger and installs it as zap's global.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config

	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.LogLevel))

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}

	l = l.With(zap.String("service", "inkspiration"), zap.String("env", cfg.Env))
	zap.ReplaceGlobals(l)
	return l, nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
