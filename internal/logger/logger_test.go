package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_InfoLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	t.Cleanup(func() { Init(Options{}) })

	Debug("hidden")
	Info("visible", "url", "https://example.com")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "https://example.com") {
		t.Errorf("info message missing: %q", out)
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	t.Cleanup(func() { Init(Options{}) })

	Debug("listing fetched", "status", 200)

	if !strings.Contains(buf.String(), "listing fetched") {
		t.Errorf("debug message missing: %q", buf.String())
	}
}

func TestInit_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	t.Cleanup(func() { Init(Options{}) })

	Info("progress")
	Warn("warning")
	Error("failure")

	out := buf.String()
	if strings.Contains(out, "progress") || strings.Contains(out, "warning") {
		t.Errorf("quiet mode leaked non-error output: %q", out)
	}
	if !strings.Contains(out, "failure") {
		t.Errorf("quiet mode dropped error output: %q", out)
	}
}

func TestInit_JSONHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	t.Cleanup(func() { Init(Options{}) })

	Info("import done", "villas", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%q", err, buf.String())
	}
	if record["msg"] != "import done" {
		t.Errorf("msg = %v", record["msg"])
	}
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() { Init(Options{}) })

	Info("custom sink")

	if !strings.Contains(buf.String(), "custom sink") {
		t.Errorf("custom logger not used: %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	t.Cleanup(func() { Init(Options{}) })

	With("component", "importer").Info("scoped")

	out := buf.String()
	if !strings.Contains(out, "component=importer") {
		t.Errorf("attribute missing: %q", out)
	}
}
