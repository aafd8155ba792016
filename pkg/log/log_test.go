package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestModuleAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewWithHandler(h).Module("vm")
	l.Info("dispatch", "op", "ADD")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["module"] != "vm" {
		t.Errorf("module attribute = %v, want vm", entry["module"])
	}
	if entry["op"] != "ADD" {
		t.Errorf("op attribute = %v, want ADD", entry["op"])
	}
}

func TestWithChainsContext(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, nil)
	l := NewWithHandler(h).With("run", 1)
	l.Warn("stall")

	if !strings.Contains(buf.String(), `"run":1`) {
		t.Errorf("log line missing run=1: %s", buf.String())
	}
}

func TestPackageLevelFunctionsUseDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(NewWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetDefault(prev)

	Debug("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("default logger did not receive Debug call: %s", buf.String())
	}
}
