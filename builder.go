package authgate

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/redis/go-redis/v9"

	internalaudit "github.com/boffins/authgate/internal/audit"
	internalrate "github.com/boffins/authgate/internal/rate"
	"github.com/boffins/authgate/password"
	"github.com/boffins/authgate/session"
	"github.com/boffins/authgate/token"
)

// Builder assembles an [Engine]. Construction is allocation-only; no
// I/O happens until the first Engine method call.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	userProvider UserProvider
	auditSink    AuditSink

	built bool
}

// New returns a Builder pre-loaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration with a clone of cfg.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the shared Redis client backing the session store and
// the rate counter store.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserProvider sets the external user store integration.
func (b *Builder) WithUserProvider(up UserProvider) *Builder {
	b.userProvider = up
	return b
}

// WithAuditSink sets the sink audit events are dispatched to.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counter registry.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the engine. A Builder can
// be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.userProvider == nil {
		return nil, errors.New("user provider is required")
	}

	tokens, err := token.New(token.Config{
		Secret: b.config.Token.Secret,
		TTL:    b.config.Token.TTL,
		Issuer: b.config.Token.Issuer,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{
		Memory:      b.config.Password.Memory,
		Time:        b.config.Password.Time,
		Parallelism: b.config.Password.Parallelism,
		SaltLength:  b.config.Password.SaltLength,
		KeyLength:   b.config.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	dummyHash, err := newDummyHash(hasher)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config: b.config,
		tokens: tokens,
		sessions: session.NewStore(
			b.redis,
			b.config.Session.RedisPrefix,
			b.config.Session.Lifetime,
		),
		limiter: internalrate.New(b.redis, internalrate.Config{
			Limit:  b.config.RateLimit.Limit,
			Window: b.config.RateLimit.Window,
		}),
		hasher:    hasher,
		users:     b.userProvider,
		metrics:   NewMetrics(b.config.Metrics),
		dummyHash: dummyHash,
	}

	if b.config.Audit.Enabled {
		engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    true,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink)
	}

	b.built = true
	return engine, nil
}

// newDummyHash derives a throwaway hash over a random password. Login
// verifies unknown identifiers against it so both failure paths perform
// the same Argon2 work.
func newDummyHash(hasher *password.Hasher) (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hasher.Hash(base64.RawStdEncoding.EncodeToString(raw))
}
