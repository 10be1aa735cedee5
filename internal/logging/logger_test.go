package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// captureDefault swaps the default logger for one writing JSON to buf and
// restores it when the test finishes.
func captureDefault(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestFromContext_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	captureDefault(t, &buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	FromContext(ctx).Info("handling")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("log entry missing request_id: %s", buf.String())
	}
}

func TestFromContext_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	captureDefault(t, &buf)

	FromContext(context.Background()).Info("handling")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("log entry has request_id without one in context: %s", buf.String())
	}
}

func TestWithFields_CarriesRunScope(t *testing.T) {
	var buf bytes.Buffer
	captureDefault(t, &buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-9")
	WithFields(ctx, "run_id", "run-42").Info("stage started")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"run-42"`) {
		t.Errorf("log entry missing run_id: %s", out)
	}
	if !strings.Contains(out, `"request_id":"req-9"`) {
		t.Errorf("log entry missing request_id: %s", out)
	}
}
