package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/tasklist"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	if got := ParseFormatter("json"); got != log.JSONFormatter {
		t.Errorf("json: got %v", got)
	}
	if got := ParseFormatter("logfmt"); got != log.LogfmtFormatter {
		t.Errorf("logfmt: got %v", got)
	}
	if got := ParseFormatter("fancy"); got != log.TextFormatter {
		t.Errorf("fallback: got %v", got)
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("Warn") || ValidLevel("loud") {
		t.Error("ValidLevel gave the wrong answer")
	}
	if !ValidFormat("logfmt") || ValidFormat("xml") {
		t.Error("ValidFormat gave the wrong answer")
	}
}

func TestNewFromConfigRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "warn", "text", false, false)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing, got %q", out)
	}
	if !strings.Contains(out, DefaultPrefix) {
		t.Errorf("prefix missing, got %q", out)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Level != log.InfoLevel || opts.Formatter != log.TextFormatter || opts.Prefix != DefaultPrefix {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	var buf bytes.Buffer
	logger := New(&buf, opts)
	logger.Debug("hidden")
	logger.Info("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("default level should be info, got %q", out)
	}
}

func TestDiagnosticSinkJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: log.DebugLevel, Formatter: log.JSONFormatter})

	sink := DiagnosticSink(logger)
	sink(tasklist.Diagnostic{Path: "todo.txt", Line: 3, Text: "garbage", Err: errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "skipping malformed line" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["path"] != "todo.txt" {
		t.Errorf("path: got %v", entry["path"])
	}
	if entry["line"] != float64(3) {
		t.Errorf("line: got %v", entry["line"])
	}
}

func TestCountingSink(t *testing.T) {
	count := 0
	var seen []int
	sink := CountingSink(func(d tasklist.Diagnostic) { seen = append(seen, d.Line) }, &count)
	sink(tasklist.Diagnostic{Line: 1})
	sink(tasklist.Diagnostic{Line: 4})

	if count != 2 {
		t.Errorf("count: got %d, want 2", count)
	}
	if len(seen) != 2 || seen[1] != 4 {
		t.Errorf("next sink: got %v", seen)
	}

	CountingSink(nil, &count)(tasklist.Diagnostic{})
	if count != 3 {
		t.Errorf("count with nil next: got %d, want 3", count)
	}
}
