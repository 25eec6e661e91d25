package config

import (
	"testing"
	"time"
)

func TestParseJWKSEndpoints(t *testing.T) {
	endpoints := parseJWKSEndpoints("https://a.example=https://a.example/jwks,https://b.example=https://b.example/jwks")
	if len(endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(endpoints))
	}
	if endpoints["https://a.example"] != "https://a.example/jwks" {
		t.Errorf("unexpected endpoint for a.example: %q", endpoints["https://a.example"])
	}
}

func TestParseJWKSEndpoints_Empty(t *testing.T) {
	endpoints := parseJWKSEndpoints("")
	if len(endpoints) != 0 {
		t.Errorf("expected empty map, got %v", endpoints)
	}
}

func TestParseJWKSEndpoints_MalformedPairsSkipped(t *testing.T) {
	endpoints := parseJWKSEndpoints("no-equals-sign,https://a.example=https://a.example/jwks")
	if len(endpoints) != 1 {
		t.Errorf("expected 1 endpoint, got %d", len(endpoints))
	}
}

func TestParseStatusCodes(t *testing.T) {
	codes, err := parseStatusCodes("429, 500,502,503")
	if err != nil {
		t.Fatalf("parseStatusCodes failed: %v", err)
	}
	expected := []int{429, 500, 502, 503}
	if len(codes) != len(expected) {
		t.Fatalf("expected %d codes, got %d", len(expected), len(codes))
	}
	for i, c := range expected {
		if codes[i] != c {
			t.Errorf("code %d: expected %d, got %d", i, c, codes[i])
		}
	}
}

func TestParseStatusCodes_Invalid(t *testing.T) {
	if _, err := parseStatusCodes("429,banana"); err == nil {
		t.Fatal("expected error for non-numeric status code")
	}
}

func TestTranscriptionConfig_IsRetryableStatus(t *testing.T) {
	cfg := TranscriptionConfig{RetryStatusCodes: []int{429, 500, 502, 503}}

	for _, code := range []int{429, 500, 502, 503} {
		if !cfg.IsRetryableStatus(code) {
			t.Errorf("expected %d to be retryable", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404} {
		if cfg.IsRetryableStatus(code) {
			t.Errorf("expected %d to be permanent", code)
		}
	}
}

func TestDatabaseConfig_PoolDurations(t *testing.T) {
	cfg := DatabaseConfig{MaxConnLifetimeMinutes: 45, MaxConnIdleMinutes: 10}

	if got := cfg.MaxConnLifetime(); got != 45*time.Minute {
		t.Errorf("MaxConnLifetime() = %v, want 45m", got)
	}
	if got := cfg.MaxConnIdleTime(); got != 10*time.Minute {
		t.Errorf("MaxConnIdleTime() = %v, want 10m", got)
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "practice",
		Password: "secret",
		Database: "practice_engine",
		SSLMode:  "require",
	}

	got := cfg.ConnectionString()
	want := "host=db.internal port=5433 user=practice password=secret dbname=practice_engine sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
