package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("Log line is not valid JSON: %v\nline: %s", err, line)
	}
	return decoded
}

func TestJSONLogger_WritesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("tree rebuilt", NodeCount(1500), Component("spatial"))

	decoded := decodeLine(t, strings.TrimSpace(buf.String()))
	if decoded["level"] != "INFO" {
		t.Errorf("Expected level INFO, got %v", decoded["level"])
	}
	if decoded["message"] != "tree rebuilt" {
		t.Errorf("Expected message, got %v", decoded["message"])
	}
	fields, ok := decoded["fields"].(map[string]any)
	if !ok {
		t.Fatal("Expected fields object")
	}
	if fields["node_count"] != float64(1500) {
		t.Errorf("Expected node_count 1500, got %v", fields["node_count"])
	}
	if fields["component"] != "spatial" {
		t.Errorf("Expected component spatial, got %v", fields["component"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("layout"))

	child.Info("pass complete", Int("iterations", 50))

	decoded := decodeLine(t, strings.TrimSpace(buf.String()))
	fields := decoded["fields"].(map[string]any)
	if fields["component"] != "layout" {
		t.Errorf("Child logger should carry the preset field, got %v", fields)
	}
	if fields["iterations"] != float64(50) {
		t.Errorf("Call-site field missing, got %v", fields)
	}

	// The parent is unaffected.
	buf.Reset()
	logger.Info("plain")
	decoded = decodeLine(t, strings.TrimSpace(buf.String()))
	if _, ok := decoded["fields"]; ok {
		t.Error("Parent logger should have no preset fields")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":     DebugLevel,
		"DEBUG":     DebugLevel,
		"warn":      WarnLevel,
		"WARNING":   WarnLevel,
		"error":     ErrorLevel,
		"":          InfoLevel,
		"gibberish": InfoLevel,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q): got %v, want %v", input, got, want)
		}
	}
}

func TestErrField(t *testing.T) {
	f := Err(errors.New("boom"))
	if f.Key != "error" || f.Value != "boom" {
		t.Errorf("Unexpected error field: %+v", f)
	}
	if f := Err(nil); f.Value != nil {
		t.Errorf("Nil error should produce nil value, got %v", f.Value)
	}
}

func TestNop_ImplementsLogger(t *testing.T) {
	var logger Logger = Nop{}
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
	if logger.With(String("k", "v")) == nil {
		t.Error("With should return a logger")
	}
}

func TestTimer_LogsDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "grid rebuild", Component("spatial"))
	timer.End()

	decoded := decodeLine(t, strings.TrimSpace(buf.String()))
	fields := decoded["fields"].(map[string]any)
	if _, ok := fields["duration"]; !ok {
		t.Error("Timer should log a duration field")
	}
	if fields["component"] != "spatial" {
		t.Errorf("Timer should carry its fields, got %v", fields)
	}
}
