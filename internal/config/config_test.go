package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":8001" {
		t.Fatalf("unexpected default addr: %q", cfg.Addr)
	}
}

func TestLoadServerConfigFullAddr(t *testing.T) {
	t.Setenv("PORT", "0.0.0.0:9000")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
}

func TestLoadCORSConfigDefaultAllowList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := loadCORSConfig()
	if len(cfg.AllowedOrigins) != 5 {
		t.Fatalf("expected 5 default origins, got %d", len(cfg.AllowedOrigins))
	}
	if cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected first origin: %q", cfg.AllowedOrigins[0])
	}
}

func TestLoadCORSConfigFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := loadCORSConfig()
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(cfg.AllowedOrigins))
	}
	if cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origin: %q", cfg.AllowedOrigins[1])
	}
}

func TestLoadAIConfigGenerationDefaults(t *testing.T) {
	for _, key := range []string{"AI_MAX_LENGTH", "AI_TEMPERATURE", "AI_TOP_P", "AI_REPETITION_PENALTY", "AI_DO_SAMPLE", "AI_MAX_CONCURRENT"} {
		t.Setenv(key, "")
	}

	cfg, err := loadAIConfig()
	if err != nil {
		t.Fatalf("loadAIConfig err: %v", err)
	}

	gen := cfg.Generation
	if gen.MaxLength != 2048 {
		t.Fatalf("unexpected max length: %d", gen.MaxLength)
	}
	if gen.Temperature != 0.7 || gen.TopP != 0.95 || gen.RepetitionPenalty != 1.15 {
		t.Fatalf("unexpected sampling params: %+v", gen)
	}
	if !gen.DoSample {
		t.Fatal("sampling must default on")
	}
	if cfg.MaxConcurrent != 2 {
		t.Fatalf("unexpected max concurrent: %d", cfg.MaxConcurrent)
	}
}
