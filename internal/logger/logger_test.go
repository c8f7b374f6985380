package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format string
		tty    bool
		want   string
	}{
		{"auto", true, "pretty"},
		{"auto", false, "json"},
		{"json", true, "json"},
		{"pretty", false, "pretty"},
	}
	for _, tt := range tests {
		if got := resolveFormat(tt.format, tt.tty); got != tt.want {
			t.Errorf("resolveFormat(%q, %t) = %q want %q", tt.format, tt.tty, got, tt.want)
		}
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "json")
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Str("component", "test").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "test" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "nonsense", "json")
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}
}
