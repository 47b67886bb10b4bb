package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SELLER_TAGS", "")
	t.Setenv("RESULT_CACHE_TTL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SellerTags != nil {
		t.Fatalf("expected empty seller tags, got %v", cfg.SellerTags)
	}
	if cfg.ResultCacheTTL != 30*time.Minute {
		t.Fatalf("expected default cache TTL, got %s", cfg.ResultCacheTTL)
	}
	if cfg.RateLimitPerSecond != 0 {
		t.Fatalf("expected rate limiting disabled by default, got %f", cfg.RateLimitPerSecond)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SELLER_TAGS", "vendor, motivated-seller,")
	t.Setenv("DEACTIVATION_TAGS", "do-not-automate")
	t.Setenv("RESULT_CACHE_TTL", "45m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected redis override, got %s", cfg.RedisAddr)
	}
	if want := []string{"vendor", "motivated-seller"}; !reflect.DeepEqual(cfg.SellerTags, want) {
		t.Fatalf("expected seller tags %v, got %v", want, cfg.SellerTags)
	}
	if want := []string{"do-not-automate"}; !reflect.DeepEqual(cfg.DeactivationTags, want) {
		t.Fatalf("expected deactivation tags %v, got %v", want, cfg.DeactivationTags)
	}
	if cfg.ResultCacheTTL != 45*time.Minute {
		t.Fatalf("expected cache TTL override, got %s", cfg.ResultCacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerSecond != 2.5 {
		t.Fatalf("expected rate limit override, got %f", cfg.RateLimitPerSecond)
	}
	if cfg.RateLimitBurst != 10 {
		t.Fatalf("expected burst override, got %d", cfg.RateLimitBurst)
	}
}
