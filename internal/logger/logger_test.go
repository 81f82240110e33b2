package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New(false)
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("New(false) level = %v, want %v", log.GetLevel(), zerolog.InfoLevel)
	}
}

func TestNew_Debug(t *testing.T) {
	log := New(true)
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("New(true) level = %v, want %v", log.GetLevel(), zerolog.DebugLevel)
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("Expected log output, got empty string")
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestWithContext(t *testing.T) {
	log := New(false)
	ctx := context.Background()

	ctxWithLogger := WithContext(ctx, log)

	if ctxWithLogger.Value(LoggerKey) == nil {
		t.Error("Expected logger in context, got nil")
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	ctx := context.Background()

	// Should return a default logger when none is in context
	log := FromContext(ctx)

	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	fields := map[string]interface{}{
		"session_id": "abc-123",
		"action":     "analyze",
	}

	logWithFields := WithFields(log, fields)
	logWithFields.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "session_id") || !strings.Contains(output, "abc-123") {
		t.Errorf("Expected output to contain session_id field, got: %s", output)
	}
	if !strings.Contains(output, "action") || !strings.Contains(output, "analyze") {
		t.Errorf("Expected output to contain action field, got: %s", output)
	}
}
