package logger

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resetLogger resets the global logger state for testing
func resetLogger() {
	baseLogger = nil
	initBaseLoggerOnce = sync.Once{}
}

func TestInit(t *testing.T) {
	t.Run("successful initialization with default level", func(t *testing.T) {
		resetLogger()
		err := Init()
		require.NoError(t, err)
		assert.NotNil(t, baseLogger)
	})

	t.Run("successful initialization with explicit level", func(t *testing.T) {
		resetLogger()
		err := Init(WithLevel("debug"))
		require.NoError(t, err)
		assert.NotNil(t, baseLogger)
	})

	t.Run("error with invalid level", func(t *testing.T) {
		resetLogger()
		err := Init(WithLevel("invalid"))
		assert.Error(t, err)
		assert.Nil(t, baseLogger)
	})

	t.Run("init only once", func(t *testing.T) {
		resetLogger()

		// First initialization
		err1 := Init(WithLevel("debug"))
		require.NoError(t, err1)
		firstLogger := baseLogger

		// Second initialization should not change the logger
		err2 := Init(WithLevel("error"))
		require.NoError(t, err2)
		assert.Equal(t, firstLogger, baseLogger, "Init() should only initialize once")
	})
}

func TestDerive(t *testing.T) {
	resetLogger()
	err := Init(WithLevel("debug"))
	require.NoError(t, err)

	t.Run("derive context with key-value pairs", func(t *testing.T) {
		derivedCtx := Derive(t.Context(), "key", "value")

		logger, ok := derivedCtx.Value(ctxKey).(*zap.SugaredLogger)
		assert.True(t, ok)
		assert.NotNil(t, logger)
	})

	t.Run("derive context with no key-value pairs", func(t *testing.T) {
		derivedCtx := Derive(t.Context())

		logger, ok := derivedCtx.Value(ctxKey).(*zap.SugaredLogger)
		assert.True(t, ok)
		assert.NotNil(t, logger)
	})

	t.Run("derive from already derived context", func(t *testing.T) {
		ctx := Derive(t.Context(), "outer", "value")
		derivedCtx := Derive(ctx, "inner", "value")

		logger, ok := derivedCtx.Value(ctxKey).(*zap.SugaredLogger)
		assert.True(t, ok)
		assert.NotNil(t, logger)
	})
}

func TestDeriveFromCtx(t *testing.T) {
	resetLogger()
	err := Init(WithLevel("debug"))
	require.NoError(t, err)

	t.Run("derive from context without logger", func(t *testing.T) {
		logger := deriveFromCtx(t.Context(), "key", "value")
		assert.NotNil(t, logger)
	})

	t.Run("derive from context with existing logger", func(t *testing.T) {
		ctx := Derive(t.Context(), "existing", "logger")

		logger := deriveFromCtx(ctx, "key", "value")
		assert.NotNil(t, logger)
	})

	t.Run("derive with trace context", func(t *testing.T) {
		tracer := otel.Tracer("test")
		ctx, span := tracer.Start(t.Context(), "test-span")
		defer span.End()

		logger := deriveFromCtx(ctx, "key", "value")
		assert.NotNil(t, logger)
	})

	t.Run("derive with context containing valid span context", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		spanContext := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		})

		ctx := trace.ContextWithSpanContext(t.Context(), spanContext)

		logger := deriveFromCtx(ctx, "key", "value")
		assert.NotNil(t, logger)
	})

	t.Run("derive with empty span context", func(t *testing.T) {
		ctx := trace.ContextWithSpanContext(t.Context(), trace.SpanContext{})

		logger := deriveFromCtx(ctx)
		assert.NotNil(t, logger)
	})
}

func TestSync(t *testing.T) {
	t.Run("sync after init", func(t *testing.T) {
		resetLogger()
		err := Init()
		require.NoError(t, err)

		// Sync should not panic and may return an error (which is fine for stdout)
		assert.NotPanics(t, func() {
			_ = Sync()
		})
	})

	t.Run("sync without init panics", func(t *testing.T) {
		resetLogger()

		assert.Panics(t, func() {
			_ = Sync()
		}, "Sync() should panic when logger is not initialized")
	})
}

func TestLog(t *testing.T) {
	resetLogger()
	err := Init(WithLevel("debug"))
	require.NoError(t, err)

	t.Run("log with context containing logger", func(t *testing.T) {
		ctx := Derive(t.Context(), "test", "value")

		assert.NotPanics(t, func() {
			log(ctx, zapcore.InfoLevel, "test message", "key", "value")
		})
	})

	t.Run("log with different levels", func(t *testing.T) {
		levels := []zapcore.Level{
			zapcore.DebugLevel,
			zapcore.InfoLevel,
			zapcore.WarnLevel,
			zapcore.ErrorLevel,
		}

		for _, level := range levels {
			assert.NotPanics(t, func() {
				log(t.Context(), level, "test message", "key", "value")
			})
		}
	})
}

func TestLevelFunctions(t *testing.T) {
	resetLogger()
	err := Init(WithLevel("debug"))
	require.NoError(t, err)

	t.Run("debug", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Debug(t.Context(), "debug message", "key", "value")
		})
	})

	t.Run("info", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Info(t.Context(), "info message")
		})
	})

	t.Run("warn", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Warn(t.Context(), "warn message", "key", "value")
		})
	})

	t.Run("error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Error(t.Context(), "error message", "key", "value")
		})
	})

	t.Run("panic", func(t *testing.T) {
		assert.Panics(t, func() {
			Panic(t.Context(), "panic message", "key", "value")
		}, "Panic() should panic")
	})
}

func TestFatal(t *testing.T) {
	t.Run("fatal exits with code 1", func(t *testing.T) {
		// This subprocess will execute the Fatal call.
		if os.Getenv("TEST_FATAL_SUBPROCESS") == "1" {
			_ = Init(WithLevel("debug"))
			// this will call os.Exit(1)
			Fatal(context.Background(), "fatal error for test")
			return
		}

		// Build a command that re-runs this test in a subprocess.
		cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
		cmd.Env = append(os.Environ(), "TEST_FATAL_SUBPROCESS=1")

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		exitErr, ok := err.(*exec.ExitError)
		assert.True(t, ok, "the subprocess should exit with a non-zero status")
		assert.Equal(t, 1, exitErr.ExitCode(), "logger.Fatal should terminate with exit code 1")

		// Assert that the log message appears on stdout (logger writes to stdout):
		assert.Contains(t, stdout.String(), `"level":"fatal"`)
	})
}

func TestEdgeCases(t *testing.T) {
	resetLogger()
	err := Init(WithLevel("debug"))
	require.NoError(t, err)

	t.Run("nil context values", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Info(t.Context(), "test message", "key", nil)
		})
	})

	t.Run("empty message", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Info(t.Context(), "")
		})
	})

	t.Run("complex value types", func(t *testing.T) {
		complexValue := map[string]any{
			"nested": map[string]string{"key": "value"},
			"array":  []int{1, 2, 3},
		}
		assert.NotPanics(t, func() {
			Info(t.Context(), "test message", "complex", complexValue)
		})
	})
}
