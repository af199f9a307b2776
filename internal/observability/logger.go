package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnv is the environment variable that overrides the configured
// log verbosity. It mirrors the KINEMA_LOG parameter accepted by recipes.
const LogLevelEnv = "KINEMA_LOG"

// NewLogger builds the process-wide zap logger. The level comes from
// KINEMA_LOG when set, otherwise from the configured level string.
// Debug level switches to the development encoder for readable output
// during scene work.
func NewLogger(configuredLevel string) (*zap.Logger, error) {
	levelStr := configuredLevel
	if env := os.Getenv(LogLevelEnv); env != "" {
		levelStr = env
	}

	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", levelStr, err)
	}

	var cfg zap.Config
	if level == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
