package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

deepgram:
  api_key: "dg-key"
  model: "nova-3"

inference:
  backend: "groq"
  api_key: "gq-key"
  model: "meta-llama/llama-4-scout-17b-16e-instruct"
  temperature: 0.2

upload:
  max_audio_bytes: 52428800

prefs:
  path: "./prefs-test.db"

log:
  level: "debug"
  format: "text"
`

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host: got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read_timeout: got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Upload.MaxAudioBytes != 52428800 {
		t.Errorf("max_audio_bytes: got %d", cfg.Upload.MaxAudioBytes)
	}
	if cfg.Inference.Backend != "groq" {
		t.Errorf("backend: got %q", cfg.Inference.Backend)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log format: got %q", cfg.Log.Format)
	}
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	// Run from a temp dir so no stray ./config.yaml is picked up.
	dir := t.TempDir()
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Upload.MaxAudioBytes != 100*1024*1024 {
		t.Errorf("default max_audio_bytes: got %d", cfg.Upload.MaxAudioBytes)
	}
	if cfg.Deepgram.Model != "nova-3" {
		t.Errorf("default deepgram model: got %q", cfg.Deepgram.Model)
	}
	if cfg.Inference.Temperature != 0.2 {
		t.Errorf("default temperature: got %v", cfg.Inference.Temperature)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("env should win: got %d", cfg.Server.Port)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestValidate_BadBackend(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, strings.Replace(validYAML, `backend: "groq"`, `backend: "cohere"`, 1))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "inference.backend") {
		t.Fatalf("expected backend validation error, got %v", err)
	}
}

func TestValidate_OversizedLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, strings.Replace(validYAML, "max_audio_bytes: 52428800", "max_audio_bytes: 2147483648", 1))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "ceiling") {
		t.Fatalf("expected ceiling validation error, got %v", err)
	}
}

func TestValidate_MaxConnsBelowMin(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, strings.Replace(validYAML, "max_conns: 10", "max_conns: 1", 1))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "max_conns") {
		t.Fatalf("expected max_conns validation error, got %v", err)
	}
}
