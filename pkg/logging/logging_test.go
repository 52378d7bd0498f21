package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Fepozopo/pctrank/pkg/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{LogLevel: "warn", LogFormat: config.FormatJSON}
	log := Component(New(cfg, &buf), "rank")

	log.Info().Msg("hidden")
	log.Warn().Int("max_bin", 4096).Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if rec["message"] != "shown" || rec["component"] != "rank" || rec["level"] != "warn" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["max_bin"] != float64(4096) {
		t.Errorf("max_bin = %v", rec["max_bin"])
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{LogLevel: "debug", LogFormat: config.FormatConsole}, &buf)
	log.Debug().Str("kernel", "mean").Msg("applying")
	out := buf.String()
	if !strings.Contains(out, "applying") || !strings.Contains(out, "kernel=") {
		t.Errorf("unexpected console output %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output should not be JSON: %q", out)
	}
}
