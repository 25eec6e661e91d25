package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger for the given environment.
// Local environments get human-readable console output at debug level;
// everything else gets JSON at info level.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "test" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}

	return zap.NewProduction()
}
