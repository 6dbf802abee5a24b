package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"Trace level", "TRACE", zerolog.TraceLevel},
		{"Debug level", "DEBUG", zerolog.DebugLevel},
		{"Info level", "INFO", zerolog.InfoLevel},
		{"Warn level", "WARN", zerolog.WarnLevel},
		{"Error level", "ERROR", zerolog.ErrorLevel},
		{"Off", "off", zerolog.Disabled},
		{"Empty defaults to Warn", "", zerolog.WarnLevel},
		{"Invalid defaults to Warn", "INVALID", zerolog.WarnLevel},
		{"Case insensitive", "debug", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	})

	tests := []struct {
		name      string
		setLevel  string
		logFunc   func() *zerolog.Event
		message   string
		shouldLog bool
	}{
		{"Debug logs when Debug", "DEBUG", func() *zerolog.Event { return log.Debug() }, "debug message", true},
		{"Debug doesn't log by default", "", func() *zerolog.Event { return log.Debug() }, "debug message", false},
		{"Warn logs by default", "", func() *zerolog.Event { return log.Warn() }, "warn message", true},
		{"Info doesn't log when Error", "ERROR", func() *zerolog.Event { return log.Info() }, "info message", false},
		{"Error logs when Debug", "DEBUG", func() *zerolog.Event { return log.Error() }, "error message", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Init(&buf, tt.setLevel)

			tt.logFunc().Str("model", "openai/gpt-5.2").Msg(tt.message)

			output := strings.TrimSpace(buf.String())
			hasOutput := output != ""
			if hasOutput != tt.shouldLog {
				t.Errorf("Expected log output: %v, got output: %q", tt.shouldLog, output)
			}

			if tt.shouldLog {
				if !strings.Contains(output, tt.message) {
					t.Errorf("Expected output to contain %q, got %q", tt.message, output)
				}
				if !strings.Contains(output, "model=openai/gpt-5.2") {
					t.Errorf("Expected output to contain field, got %q", output)
				}
			}
		})
	}
}
