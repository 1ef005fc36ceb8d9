package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{"default warn", 0, zerolog.WarnLevel},
		{"info", 1, zerolog.InfoLevel},
		{"debug", 2, zerolog.DebugLevel},
		{"trace", 3, zerolog.TraceLevel},
		{"clamped to trace", 7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := t.TempDir()
			t.Setenv("XDG_STATE_HOME", state)

			Setup(tt.verbosity)

			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Errorf("Setup(%d) level = %v, want %v", tt.verbosity, got, tt.want)
			}
			if _, err := os.Stat(filepath.Join(state, "pluto", "pluto.log")); err != nil {
				t.Errorf("log file not created: %v", err)
			}
		})
	}
}

func TestLogFilePathUsesStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	want := filepath.Join("/custom/state", "pluto", "pluto.log")
	if got := LogFilePath(); got != want {
		t.Errorf("LogFilePath() = %q, want %q", got, want)
	}
}
