package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("SetLogLevel", func(t *testing.T) {
		tc := []struct {
			name  string
			level string
			want  log.Level
		}{
			{name: "debug", level: "debug", want: log.DebugLevel},
			{name: "mixed case warn", level: " WARN ", want: log.WarnLevel},
			{name: "unknown falls back to info", level: "chatty", want: log.InfoLevel},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				logger := NewLogger(&bytes.Buffer{})
				SetLogLevel(logger, tt.level)
				if got := logger.GetLevel(); got != tt.want {
					t.Errorf("SetLogLevel(%q) level = %v, want %v", tt.level, got, tt.want)
				}
			})
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "team", "SV Example 1")
		logger.Warn("overwriting")

		out := buf.String()
		if !strings.Contains(out, "overwriting") || !strings.Contains(out, "SV Example 1") {
			t.Errorf("expected message and field in output, got %q", out)
		}
	})

	t.Run("NewFileLogger creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "run.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("hello")
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Errorf("expected distinct IDs, got %s twice", a)
	}
	if len(a) != 36 {
		t.Errorf("expected 36 character UUID, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"teams": 2}

	compact, err := MarshalJSON(v, false)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(compact) != `{"teams":2}` {
		t.Errorf("compact = %s", compact)
	}

	pretty, err := MarshalJSON(v, true)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"teams\": 2") {
		t.Errorf("pretty = %s", pretty)
	}
}
