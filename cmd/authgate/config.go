package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	authgate "github.com/boffins/authgate"
)

// duration wraps time.Duration with YAML decoding from strings like
// "30m" or "24h".
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = duration(parsed)
	return nil
}

type fileConfig struct {
	Listen string `yaml:"listen"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Token struct {
		// Secret is base64 (standard encoding), at least 32 bytes decoded.
		Secret string   `yaml:"secret"`
		TTL    duration `yaml:"ttl"`
		Issuer string   `yaml:"issuer"`
	} `yaml:"token"`

	Session struct {
		Prefix   string   `yaml:"prefix"`
		Lifetime duration `yaml:"lifetime"`
		// Pointer so an absent key keeps the secure default. Only local
		// plain-HTTP development should ever set this to false.
		CookieSecure *bool `yaml:"cookie_secure"`
	} `yaml:"session"`

	RateLimit struct {
		Limit           int      `yaml:"limit"`
		Window          duration `yaml:"window"`
		ProtectedRoutes []string `yaml:"protected_routes"`
		FailOpen        bool     `yaml:"fail_open"`
	} `yaml:"rate_limit"`

	Metrics struct {
		// Pointer so an absent key keeps the default instead of
		// disabling metrics.
		Enabled *bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// appConfig is everything the binary needs beyond the engine config.
type appConfig struct {
	Listen        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// CookieSecure marks the session cookie Secure so it is never sent
	// over plaintext HTTP. Defaults to true.
	CookieSecure bool
	Engine       authgate.Config
}

func defaultAppConfig() appConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return appConfig{
		Listen:       ":8080",
		RedisAddr:    addr,
		CookieSecure: true,
		Engine:       authgate.DefaultConfig(),
	}
}

// loadConfig reads a YAML file and overlays it onto the defaults.
// Absent file sections keep the default values; the token secret is
// the one field with no usable default across restarts, so a config
// file should provide it.
func loadConfig(path string) (appConfig, error) {
	app := defaultAppConfig()
	cfg := app.Engine

	if path == "" {
		return app, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return appConfig{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return appConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Listen != "" {
		app.Listen = fc.Listen
	}
	if fc.Redis.Addr != "" {
		app.RedisAddr = fc.Redis.Addr
	}
	app.RedisPassword = fc.Redis.Password
	app.RedisDB = fc.Redis.DB

	if fc.Token.Secret != "" {
		secret, err := base64.StdEncoding.DecodeString(fc.Token.Secret)
		if err != nil {
			return appConfig{}, fmt.Errorf("token secret is not valid base64: %w", err)
		}
		cfg.Token.Secret = secret
	}
	if fc.Token.TTL != 0 {
		cfg.Token.TTL = time.Duration(fc.Token.TTL)
	}
	if fc.Token.Issuer != "" {
		cfg.Token.Issuer = fc.Token.Issuer
	}
	if fc.Session.Prefix != "" {
		cfg.Session.RedisPrefix = fc.Session.Prefix
	}
	if fc.Session.Lifetime != 0 {
		cfg.Session.Lifetime = time.Duration(fc.Session.Lifetime)
	}
	if fc.Session.CookieSecure != nil {
		app.CookieSecure = *fc.Session.CookieSecure
	}
	if fc.RateLimit.Limit != 0 {
		cfg.RateLimit.Limit = fc.RateLimit.Limit
	}
	if fc.RateLimit.Window != 0 {
		cfg.RateLimit.Window = time.Duration(fc.RateLimit.Window)
	}
	if fc.RateLimit.ProtectedRoutes != nil {
		cfg.RateLimit.ProtectedRoutes = fc.RateLimit.ProtectedRoutes
	}
	cfg.RateLimit.FailOpen = fc.RateLimit.FailOpen
	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}

	app.Engine = cfg
	return app, nil
}
