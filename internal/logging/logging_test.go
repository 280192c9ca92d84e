package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("JSON"); got != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %q", got)
	}
	if got := ParseFormat("logfmt"); got != FormatText {
		t.Errorf("ParseFormat(logfmt) = %q", got)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if !strings.Contains(out, "shown 3") || !strings.Contains(out, "shown 4") {
		t.Errorf("output missing messages: %q", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("output missing level: %q", out)
	}

	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel(LevelDebug) did not enable debug output")
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(LevelInfo, FormatJSON)
	l.SetOutput(&buf)

	l.With("component", "server").Info("listening on %s", ":8080")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "listening on :8080" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["component"] != "server" {
		t.Errorf("component = %v", line["component"])
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
	l.Error("nothing %s", "here")
}
