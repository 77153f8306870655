package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, &buf, "svc")

	l.WithComponent("fetch").Debug("request dispatched", Fields(FieldMethod, "GET", FieldStatusCode, 200))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "request dispatched" {
		t.Errorf("expected message 'request dispatched', got %v", entry["message"])
	}
	if entry[FieldComponent] != "fetch" {
		t.Errorf("expected component 'fetch', got %v", entry[FieldComponent])
	}
	if entry[FieldMethod] != "GET" {
		t.Errorf("expected method 'GET', got %v", entry[FieldMethod])
	}
	if entry[FieldStatusCode] != float64(200) {
		t.Errorf("expected status_code 200, got %v", entry[FieldStatusCode])
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf, "svc")

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info message, got %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf, "svc")
	l.WithError(errors.New("boom")).Error("failed")
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error field, got %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf, "svc")
	l.WithFields(map[string]interface{}{"key": "value"}).Info("msg")
	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("expected key field, got %q", buf.String())
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, &buf, "gofetch")
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[GOF][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("discarded")
}

func TestGlobalLogger(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}

	custom := NewNop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	Init(Config{Level: "debug", Format: "json", ServiceName: "svc"})
	if GetGlobalLogger() == custom {
		t.Error("expected Init to replace the global logger")
	}
	SetGlobalLogger(NewNop())
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(f) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(f), f)
	}
	if f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields: %v", f)
	}

	ef := ErrorFields("fetch", errors.New("x"))
	if ef[FieldOperation] != "fetch" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields: %v", ef)
	}
}
