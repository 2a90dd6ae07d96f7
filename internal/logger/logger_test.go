package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected *zapcore.Level
	}{
		{input: "debug", expected: levelPtr(zapcore.DebugLevel)},
		{input: "INFO", expected: levelPtr(zapcore.InfoLevel)},
		{input: " warn ", expected: levelPtr(zapcore.WarnLevel)},
		{input: "error", expected: levelPtr(zapcore.ErrorLevel)},
		{input: "", expected: nil},
		{input: "verbose", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			switch {
			case tt.expected == nil && got != nil:
				t.Errorf("parseLevel(%q) = %v, want nil", tt.input, *got)
			case tt.expected != nil && (got == nil || *got != *tt.expected):
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, *tt.expected)
			}
		})
	}
}

func TestNopLoggerWith(t *testing.T) {
	log := NewNop().With(String("component", "test"))
	log.Info("discarded", Int("n", 1), Bool("ok", true))
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() on nop logger = %v, want nil", err)
	}
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
