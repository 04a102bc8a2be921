package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadHostConfig(t *testing.T) {
	path := writeFile(t, `
name = "bench-host"
cport_max = 32
operation_timeout = "500ms"
status_addr = ":9999"
cors_origins = ["http://example.test"]
`)
	cfg, err := LoadHostConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "bench-host" || cfg.CPortMax != 32 || cfg.StatusAddr != ":9999" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.OperationTimeout.Duration != 500*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.OperationTimeout.Duration)
	}
}

func TestLoadHostConfigDefaults(t *testing.T) {
	cfg, err := LoadHostConfig(writeFile(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "gbhost" || cfg.CPortMax != 128 || cfg.StatusAddr != ":9400" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.OperationTimeout.Duration != 2*time.Second {
		t.Fatalf("default timeout not applied: %v", cfg.OperationTimeout.Duration)
	}
}

func TestLoadHostConfigRejectsBadToml(t *testing.T) {
	if _, err := LoadHostConfig(writeFile(t, "cport_max = [nope")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadHostConfigMissingFile(t *testing.T) {
	if _, err := LoadHostConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("template must refuse to overwrite without force")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
	if _, err := LoadHostConfig(path); err != nil {
		t.Fatalf("template must load cleanly: %v", err)
	}
}
