package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_ENV",
		"HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_USE_SSL",
		"JWT_SECRET", "JWT_ACCESS_TTL", "REFRESH_TTL",
		"MODERATION_MESSAGES_PER_MINUTE", "MODERATION_MESSAGES_PER_HOUR",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "dev" {
		t.Fatalf("Env = %q, want dev", cfg.Env)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("Auth.JWTAccessTTL = %v, want 15m", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Moderation.MessagesPerMinute != 6 {
		t.Fatalf("Moderation.MessagesPerMinute = %d, want 6", cfg.Moderation.MessagesPerMinute)
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearConfigEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
env: prod
http:
  addr: ":9090"
  read_timeout: 2s
log:
  level: info
postgres:
  dsn: "postgres://prod@db:5432/gallery"
moderation:
  messages_per_hour: 120
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("Env = %q, want prod", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("HTTP.ReadTimeout = %v, want 2s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Moderation.MessagesPerHour != 120 {
		t.Fatalf("Moderation.MessagesPerHour = %d, want 120", cfg.Moderation.MessagesPerHour)
	}
	// Untouched sections keep defaults.
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("Redis.Addr = %q, want default", cfg.Redis.Addr)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	clearConfigEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("env: prod\nlog:\n  level: info\n"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("JWT_ACCESS_TTL", "30m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Fatalf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("Redis.DB = %d, want 3", cfg.Redis.DB)
	}
	if !cfg.S3.UseSSL {
		t.Fatal("S3.UseSSL = false, want true")
	}
	if cfg.Auth.JWTAccessTTL != 30*time.Minute {
		t.Fatalf("Auth.JWTAccessTTL = %v, want 30m", cfg.Auth.JWTAccessTTL)
	}
}

func TestEnvOverrideParseError(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(""); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr = %q, want default", cfg.HTTP.Addr)
	}
}
