package observability_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cordialhq/cordial/internal/observability"
)

func TestLoggers(t *testing.T) {
	t.Run("CLI logger creation", func(t *testing.T) {
		observability.InitCLILogger(false)

		if observability.CLILogger == nil {
			t.Fatal("CLI logger should not be nil after initialization")
		}
		if observability.CLILogger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatal("CLI logger should default to info level")
		}

		observability.CLILogger.Info("Test CLI log message",
			zap.String("test", "value"))
	})

	t.Run("CLI logger verbose mode", func(t *testing.T) {
		observability.InitCLILogger(true)

		if !observability.CLILogger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatal("verbose CLI logger should enable debug level")
		}

		observability.CLILogger.Debug("Debug message",
			zap.String("mode", "verbose"))
	})

	t.Run("Structured logger levels", func(t *testing.T) {
		logger := observability.NewStructuredLogger("warn", "json")
		if logger == nil {
			t.Fatal("structured logger should not be nil")
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Fatal("warn-level logger should not enable info")
		}
		if !logger.Core().Enabled(zapcore.WarnLevel) {
			t.Fatal("warn-level logger should enable warn")
		}
	})

	t.Run("Structured logger console format", func(t *testing.T) {
		logger := observability.NewStructuredLogger("info", "console")
		if logger == nil {
			t.Fatal("structured logger should not be nil")
		}

		logger.Info("Test structured log message",
			zap.String("component", "test"),
			zap.Int("request_id", 123))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logger := observability.NewStructuredLogger("chatty", "json")
		if logger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatal("unknown level should fall back to info, not debug")
		}
		if !logger.Core().Enabled(zapcore.InfoLevel) {
			t.Fatal("unknown level should fall back to info")
		}
	})
}
