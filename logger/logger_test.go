package logger

import (
	"testing"
	"time"
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

func TestNew(t *testing.T) {
	cfg := &Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "my-service")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "my-service" {
		t.Errorf("expected service 'my-service', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test")
	cl := l.WithComponent("handler")
	if cl == nil {
		t.Fatal("expected non-nil logger")
	}
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
}

func TestGlobalLogger(t *testing.T) {
	SetGlobalLogger(nil)
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected global logger to be created on demand")
	}
	if GetGlobalLogger() != l {
		t.Error("expected the same global instance on repeat calls")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %q", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown level")
	}

	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "save", "id", 42)
	if m["op"] != "save" {
		t.Errorf("expected op=save, got %v", m["op"])
	}
	if m["id"] != 42 {
		t.Errorf("expected id=42, got %v", m["id"])
	}
}

func TestFields_OddPairs(t *testing.T) {
	m := Fields("op", "save", "dangling")
	if len(m) != 1 {
		t.Errorf("dangling key should be dropped, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("query", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected duration_ms=1500, got %v", m[FieldDuration])
	}
	if m[FieldOperation] != "query" {
		t.Errorf("expected operation=query, got %v", m[FieldOperation])
	}
}
