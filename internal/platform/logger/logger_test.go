package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
		enabled       zapcore.Level
	}{
		{"info", "json", false, zapcore.InfoLevel},
		{"debug", "console", false, zapcore.DebugLevel},
		{"loud", "json", true, 0},
		{"info", "xml", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			log, err := New(tt.level, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !log.Core().Enabled(tt.enabled) {
				t.Fatalf("expected %s to be enabled", tt.enabled)
			}
			if tt.enabled > zapcore.DebugLevel && log.Core().Enabled(zapcore.DebugLevel) {
				t.Fatalf("debug must be disabled at %s", tt.level)
			}
		})
	}
}
