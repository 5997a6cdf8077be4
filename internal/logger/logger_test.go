package logger

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"unknown level falls back", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	log := New("info")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	// Formatting args
	log.Info(ctx, "analyzed %s in %d slides", "deck.pptx", 12)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want level
	}{
		{"debug", "debug", levelDebug},
		{"info", "info", levelInfo},
		{"warn", "warn", levelWarn},
		{"error", "error", levelError},
		{"mixed case", "WARN", levelWarn},
		{"unknown defaults to info", "verbose", levelInfo},
		{"empty defaults to info", "", levelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  string
		logLevel  level
		shouldLog bool
	}{
		{"debug logs at debug level", "debug", levelDebug, true},
		{"info logs at debug level", "debug", levelInfo, true},
		{"debug suppressed at info level", "info", levelDebug, false},
		{"info logs at info level", "info", levelInfo, true},
		{"warn suppressed at error level", "error", levelWarn, false},
		{"error always logs", "debug", levelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.minLevel).(*implLogger)
			if got := tt.logLevel >= l.min; got != tt.shouldLog {
				t.Errorf("level %v with min %q: logged = %v, want %v", tt.logLevel, tt.minLevel, got, tt.shouldLog)
			}
		})
	}
}
