// Package config loads intervue settings from an optional YAML file with
// environment-variable overrides. Precedence: env > file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath points at an alternate config file.
const EnvConfigPath = "INTERVUE_CONFIG"

type Config struct {
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
}

// ClientConfig configures the chat TUI's transport.
type ClientConfig struct {
	// BaseURL of the question/evaluation service.
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ServerConfig configures the `intervue serve` backend.
type ServerConfig struct {
	BindAddr         string        `yaml:"bind_addr"`
	OllamaURL        string        `yaml:"ollama_url"`
	OllamaModel      string        `yaml:"ollama_model"`
	OllamaTimeout    time.Duration `yaml:"ollama_timeout"`
	MetricsNamespace string        `yaml:"metrics_namespace"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when no file and no environment
// overrides are present. The addresses mirror the service's conventional
// local setup: the backend on :8000, Ollama on its stock port.
func Default() Config {
	return Config{
		Client: ClientConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 30 * time.Second,
		},
		Server: ServerConfig{
			BindAddr:         ":8000",
			OllamaURL:        "http://localhost:11434",
			OllamaModel:      "deepseek-r1:1.5b",
			OllamaTimeout:    30 * time.Second,
			MetricsNamespace: "intervue",
			ShutdownTimeout:  15 * time.Second,
		},
	}
}

// Load reads the config file at path (or, when path is empty, the file
// named by INTERVUE_CONFIG, falling back to ~/.config/intervue/config.yaml)
// and applies environment overrides on top. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "intervue", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.Client.BaseURL = envOrDefault("INTERVUE_API_URL", cfg.Client.BaseURL)
	cfg.Server.BindAddr = envOrDefault("INTERVUE_BIND_ADDR", cfg.Server.BindAddr)
	cfg.Server.OllamaURL = envOrDefault("INTERVUE_OLLAMA_URL", cfg.Server.OllamaURL)
	cfg.Server.OllamaModel = envOrDefault("INTERVUE_OLLAMA_MODEL", cfg.Server.OllamaModel)

	var err error
	cfg.Client.RequestTimeout, err = durationFromEnv("INTERVUE_REQUEST_TIMEOUT", cfg.Client.RequestTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.Server.OllamaTimeout, err = durationFromEnv("INTERVUE_OLLAMA_TIMEOUT", cfg.Server.OllamaTimeout)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
