package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("DEFAULT_POST_COUNT", "")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.NATSSubject != "campaigns.requested" {
		t.Fatalf("expected default nats subject, got %q", cfg.NATSSubject)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.DefaultPostCount != 3 {
		t.Fatalf("expected default post count 3, got %d", cfg.DefaultPostCount)
	}
	if cfg.FetchTimeout().Seconds() != 8 {
		t.Fatalf("expected default fetch timeout 8s, got %v", cfg.FetchTimeout())
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "campaigns.test")
	t.Setenv("DEFAULT_POST_COUNT", "5")
	t.Setenv("FETCH_RATE_PER_SECOND", "0.5")

	cfg := Load()
	if cfg.NATSSubject != "campaigns.test" {
		t.Fatalf("expected subject override, got %q", cfg.NATSSubject)
	}
	if cfg.DefaultPostCount != 5 {
		t.Fatalf("expected post count 5, got %d", cfg.DefaultPostCount)
	}
	if cfg.FetchRatePerSecond != 0.5 {
		t.Fatalf("expected fetch rate 0.5, got %v", cfg.FetchRatePerSecond)
	}
}

func TestLoadFallsBackOnUnparsableNumbers(t *testing.T) {
	t.Setenv("DEFAULT_POST_COUNT", "many")
	t.Setenv("FETCH_RATE_PER_SECOND", "fast")

	cfg := Load()
	if cfg.DefaultPostCount != 3 {
		t.Fatalf("expected fallback post count 3, got %d", cfg.DefaultPostCount)
	}
	if cfg.FetchRatePerSecond != 2 {
		t.Fatalf("expected fallback fetch rate 2, got %v", cfg.FetchRatePerSecond)
	}
}
