// Package logger builds the process-wide zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger tuned by the ENVIRONMENT variable:
// production gets sampled JSON output at Warn, anything else gets
// console output at Info for development.
func New() (*zap.Logger, error) {
	env := os.Getenv("ENVIRONMENT")

	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.With(zap.String("environment", environmentName(env))), nil
}

func environmentName(env string) string {
	if env == "" {
		return "development"
	}
	return env
}
