package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitText(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Verbose: true, Format: "text", Output: &buf}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Debug("translating", "target", "jvm")

	out := buf.String()
	if !strings.Contains(out, "msg=translating") || !strings.Contains(out, "target=jvm") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Verbose: true, Format: "json", Output: &buf}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	With("file", "a.ins").Info("wrote output")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if rec["msg"] != "wrote output" || rec["file"] != "a.ins" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	if err := Init(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Debug("hidden")
	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug and info should be suppressed: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning missing: %q", out)
	}
}

func TestInitUnknownFormat(t *testing.T) {
	if err := Init(Config{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
