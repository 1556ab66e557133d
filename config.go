package authgate

import (
	"crypto/rand"
	"errors"
	"time"
)

// Config is the full engine configuration. Instances are assembled
// before Build and treated as immutable afterwards; the Builder clones
// the config so later caller mutation cannot reach a running engine.
type Config struct {
	Token     TokenConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Password  PasswordConfig
	Account   AccountConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// TokenConfig configures the stateless bearer-token service. Secret is
// the process-wide HS256 signing secret, injected here rather than read
// from a global so tests can run with per-test secrets.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// SessionConfig configures the server-side session store.
type SessionConfig struct {
	RedisPrefix string
	// Lifetime is fixed at creation; there is no sliding renewal.
	Lifetime time.Duration
}

// RateLimitConfig configures the fixed-window limiter.
type RateLimitConfig struct {
	// Limit requests per Window per (client IP, route).
	Limit  int
	Window time.Duration
	// ProtectedRoutes are the only routes the limiter counts.
	ProtectedRoutes []string
	// FailOpen admits requests when the counter store is unreachable.
	// The default (false) fails closed on protected routes, preserving
	// the abuse-protection guarantee at the cost of availability.
	FailOpen bool
}

// PasswordConfig carries Argon2id cost parameters plus the minimum
// accepted password length.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	MinLength   int
}

// AccountConfig controls signup behavior.
type AccountConfig struct {
	DefaultRole  Role
	AllowedRoles []Role
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig toggles the in-process counter registry.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns a working baseline: a freshly generated signing
// secret, 30-minute tokens, 24-hour sessions, and 5 requests per minute
// on /login and /signup. Production deployments must replace the secret
// with their own stable value before issuing tokens that outlive the
// process.
func DefaultConfig() Config {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		// crypto/rand failing is unrecoverable; an empty secret fails
		// Validate rather than silently signing with zeros.
		secret = nil
	}

	return Config{
		Token: TokenConfig{
			Secret: secret,
			TTL:    30 * time.Minute,
			Issuer: "authgate",
		},
		Session: SessionConfig{
			RedisPrefix: "ag",
			Lifetime:    24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Limit:           5,
			Window:          time.Minute,
			ProtectedRoutes: []string{"/login", "/signup"},
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        2,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
			MinLength:   4,
		},
		Account: AccountConfig{
			DefaultRole:  RoleUser,
			AllowedRoles: []Role{RoleUser, RoleAdmin},
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations an Engine cannot safely run with.
func (c Config) Validate() error {
	if len(c.Token.Secret) < 32 {
		return errors.New("token secret must be at least 32 bytes")
	}
	if c.Token.TTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	if c.Session.RedisPrefix == "" {
		return errors.New("session redis prefix must not be empty")
	}
	if c.Session.Lifetime <= 0 {
		return errors.New("session lifetime must be positive")
	}
	if c.RateLimit.Limit <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.RateLimit.Window < time.Second {
		return errors.New("rate limit window must be at least one second")
	}
	if c.Password.MinLength < 1 {
		return errors.New("password minimum length must be positive")
	}
	if c.Account.DefaultRole == RoleNone {
		return errors.New("default role must not be empty")
	}
	if !roleAllowed(c.Account.AllowedRoles, c.Account.DefaultRole) {
		return errors.New("default role must be in the allowed role list")
	}
	return nil
}

func roleAllowed(allowed []Role, role Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func cloneConfig(cfg Config) Config {
	out := cfg

	if cfg.Token.Secret != nil {
		out.Token.Secret = append([]byte(nil), cfg.Token.Secret...)
	}
	if cfg.RateLimit.ProtectedRoutes != nil {
		out.RateLimit.ProtectedRoutes = append([]string(nil), cfg.RateLimit.ProtectedRoutes...)
	}
	if cfg.Account.AllowedRoles != nil {
		out.Account.AllowedRoles = append([]Role(nil), cfg.Account.AllowedRoles...)
	}

	return out
}
