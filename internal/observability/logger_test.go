package observability

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger_ConfiguredLevel(t *testing.T) {
	logger, err := NewLogger("warn")
	if err != nil {
		t.Fatalf("NewLogger(warn) error = %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info enabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn disabled at warn level")
	}
}

func TestNewLogger_EnvOverride(t *testing.T) {
	t.Setenv(LogLevelEnv, "debug")

	logger, err := NewLogger("error")
	if err != nil {
		t.Fatalf("NewLogger error = %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("KINEMA_LOG=debug did not override configured level")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger("shouty"); err == nil {
		t.Fatal("NewLogger(shouty) succeeded, want error")
	}
}
