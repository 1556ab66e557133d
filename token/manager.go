package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors distinguishing the three ways verification can fail.
// Callers map these to a single opaque 401 at the HTTP boundary.
var (
	// ErrExpired is returned when the token's expiry has passed. The
	// boundary is exclusive: a token presented at exactly exp is rejected.
	ErrExpired = errors.New("token expired")
	// ErrSignature is returned when the signature does not verify against
	// the configured secret, including any post-issue claim tampering.
	ErrSignature = errors.New("token signature invalid")
	// ErrMalformed is returned when the token cannot be decoded at all.
	ErrMalformed = errors.New("token malformed")
)

const minSecretBytes = 32

// Config holds the signing secret and issuance parameters. The secret is
// process-wide, injected at construction, and never read from globals so
// tests can run with per-test secrets.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Manager issues and verifies self-contained HS256 access tokens carrying
// subject and role claims. Manager is immutable after New and safe for
// concurrent use.
type Manager struct {
	config Config
	now    func() time.Time
}

// Claims is the wire shape of an access token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// New validates cfg and returns a ready Manager.
func New(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, errors.New("signing secret must be at least 32 bytes")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}

	return &Manager{config: cfg, now: time.Now}, nil
}

// Issue signs a token for subject with the given role. The token is
// URL-safe (compact JWS serialization) and valid for the configured TTL.
func (m *Manager) Issue(subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}

	now := m.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		},
	}
	if m.config.Issuer != "" {
		claims.Issuer = m.config.Issuer
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.config.Secret)
}

// Verify parses and validates tokenStr. On success the returned Claims
// carry the subject and role exactly as issued; on any failure no claims
// are returned — a token is never partially trusted.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrMalformed
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}

	// No leeway is configured, so the library already rejects at
	// now >= exp; guard here anyway in case parser defaults change.
	if exp := claims.ExpiresAt; exp == nil || !m.now().Before(exp.Time) {
		return nil, ErrExpired
	}

	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignature
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return ErrSignature
	default:
		return ErrMalformed
	}
}
