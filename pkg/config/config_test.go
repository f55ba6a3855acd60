package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigPath,
		"INTERVUE_API_URL",
		"INTERVUE_BIND_ADDR",
		"INTERVUE_OLLAMA_URL",
		"INTERVUE_OLLAMA_MODEL",
		"INTERVUE_REQUEST_TIMEOUT",
		"INTERVUE_OLLAMA_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want default", cfg.Client.BaseURL)
	}
	if cfg.Server.OllamaModel != "deepseek-r1:1.5b" {
		t.Errorf("OllamaModel = %q, want default", cfg.Server.OllamaModel)
	}
	if cfg.Client.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.Client.RequestTimeout)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
client:
  base_url: http://interview.internal:9000
server:
  bind_addr: ":9000"
  ollama_model: llama3:latest
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Env wins over the file.
	t.Setenv("INTERVUE_API_URL", "http://localhost:7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.BaseURL != "http://localhost:7000" {
		t.Errorf("BaseURL = %q, want env override", cfg.Client.BaseURL)
	}
	if cfg.Server.BindAddr != ":9000" {
		t.Errorf("BindAddr = %q, want file value", cfg.Server.BindAddr)
	}
	if cfg.Server.OllamaModel != "llama3:latest" {
		t.Errorf("OllamaModel = %q, want file value", cfg.Server.OllamaModel)
	}
	// Values the file does not mention keep their defaults.
	if cfg.Server.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q, want default", cfg.Server.OllamaURL)
	}
}

func TestLoadBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("INTERVUE_REQUEST_TIMEOUT", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() expected error for bad duration")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("client: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for malformed yaml")
	}
}
