package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if got := logOutput(false, &stdout, &stderr); got != &stdout {
		t.Error("expected stdout without the console view")
	}
	if got := logOutput(true, &stdout, &stderr); got != &stderr {
		t.Error("expected stderr while the console view draws on stdout")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(tt.level, &bytes.Buffer{})
			if !logger.Enabled(context.Background(), tt.want) {
				t.Errorf("level %s should be enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-1) {
				t.Errorf("level below %s should be disabled", tt.want)
			}
		})
	}
}

func TestNewLogger_WritesText(t *testing.T) {
	var out bytes.Buffer
	newLogger("info", &out).Info("Configuration loaded", "log_level", "info")

	if !strings.Contains(out.String(), `msg="Configuration loaded" log_level=info`) {
		t.Errorf("unexpected log line %q", out.String())
	}
}
