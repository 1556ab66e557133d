package main

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverlaysFile(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	raw := `
listen: ":9090"
redis:
  addr: "redis.internal:6379"
token:
  secret: "` + secret + `"
  ttl: 15m
session:
  lifetime: 12h
rate_limit:
  limit: 10
  window: 30s
  protected_routes: ["/login"]
metrics:
  enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	app, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if app.Listen != ":9090" {
		t.Fatalf("Listen = %q, want :9090", app.Listen)
	}
	if app.RedisAddr != "redis.internal:6379" {
		t.Fatalf("RedisAddr = %q", app.RedisAddr)
	}
	if string(app.Engine.Token.Secret) != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("token secret not decoded")
	}
	if app.Engine.Token.TTL != 15*time.Minute {
		t.Fatalf("token TTL = %v, want 15m", app.Engine.Token.TTL)
	}
	if app.Engine.Session.Lifetime != 12*time.Hour {
		t.Fatalf("session lifetime = %v, want 12h", app.Engine.Session.Lifetime)
	}
	if app.Engine.RateLimit.Limit != 10 || app.Engine.RateLimit.Window != 30*time.Second {
		t.Fatalf("rate limit = %d/%v", app.Engine.RateLimit.Limit, app.Engine.RateLimit.Window)
	}
	if len(app.Engine.RateLimit.ProtectedRoutes) != 1 || app.Engine.RateLimit.ProtectedRoutes[0] != "/login" {
		t.Fatalf("protected routes = %v", app.Engine.RateLimit.ProtectedRoutes)
	}
	if app.Engine.Metrics.Enabled {
		t.Fatal("metrics should be disabled by the file")
	}
	if !app.CookieSecure {
		t.Fatal("cookie_secure must default to true when the file omits it")
	}

	if err := app.Engine.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadConfigDefaultsWhenAbsent(t *testing.T) {
	app, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if app.Listen != ":8080" {
		t.Fatalf("Listen = %q, want :8080", app.Listen)
	}
	if !app.Engine.Metrics.Enabled {
		t.Fatal("metrics should default to enabled")
	}
	if !app.CookieSecure {
		t.Fatal("cookie_secure should default to true")
	}
	if err := app.Engine.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadConfigCookieSecureOptOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("session:\n  cookie_secure: false\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	app, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if app.CookieSecure {
		t.Fatal("explicit cookie_secure: false was ignored")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("token:\n  ttl: nonsense\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Fatal("loadConfig() accepted an invalid duration")
	}
}
