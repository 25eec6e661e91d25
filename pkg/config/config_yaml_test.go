package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestShippedConfigFile parses the config.yaml shipped at the repository root
// and checks it still matches the Config struct tags. A renamed or mistyped
// key would otherwise silently fall back to env defaults at startup.
func TestShippedConfigFile(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "config.yaml")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read shipped config.yaml: %v", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		t.Fatalf("Shipped config.yaml does not match Config struct: %v", err)
	}

	if cfg.Port != "3080" {
		t.Errorf("port = %q, want 3080", cfg.Port)
	}
	if cfg.Database.Database != "practice_engine" {
		t.Errorf("database.database = %q", cfg.Database.Database)
	}
	if cfg.Database.MaxConnLifetimeMinutes != 60 || cfg.Database.MaxConnIdleMinutes != 30 {
		t.Errorf("database pool durations = %d/%d, want 60/30",
			cfg.Database.MaxConnLifetimeMinutes, cfg.Database.MaxConnIdleMinutes)
	}
	if cfg.Import.BurstSize != 50 {
		t.Errorf("import.burst_size = %d, want 50", cfg.Import.BurstSize)
	}
	if cfg.Transcription.Model != "whisper-1" {
		t.Errorf("transcription.model = %q", cfg.Transcription.Model)
	}
}

func TestShippedConfigFile_NoSecrets(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "config.yaml")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read shipped config.yaml: %v", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Failed to parse config.yaml: %v", err)
	}

	// Secrets come from the environment only; the YAML file must not grow
	// keys for them.
	for section, forbidden := range map[string]string{
		"database":      "password",
		"redis":         "password",
		"transcription": "api_key",
	} {
		node, ok := doc[section]
		if !ok {
			continue
		}
		var fields map[string]yaml.Node
		if err := node.Decode(&fields); err != nil {
			t.Fatalf("Failed to decode %s section: %v", section, err)
		}
		if _, found := fields[forbidden]; found {
			t.Errorf("config.yaml %s section contains secret key %q", section, forbidden)
		}
	}
}
