// Package token issues and verifies signed session tokens.
//
// Tokens are JWTs signed with a symmetric HMAC key. Every issued token
// carries the subject plus issuance and expiry timestamps; verification
// re-checks the signature and expiry and returns the subject. Callers
// never see raw library errors: failures surface as the package
// sentinels ErrMalformed, ErrBadSignature, ErrExpired and ErrInvalid.
//
// Usage:
//
//	codec, err := token.NewCodec(token.Config{Secret: secret})
//	tok, err := codec.Issue("manu")
//	subject, err := codec.Verify(tok.Value)
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Verification sentinels, errors.Is-comparable so callers can branch
// without depending on the underlying JWT library.
var (
	// ErrMalformed indicates the token is not structurally a token.
	ErrMalformed = errors.New("token: malformed token")

	// ErrBadSignature indicates the signature does not verify with the
	// configured key, including tokens signed with a different algorithm.
	ErrBadSignature = errors.New("token: signature verification failed")

	// ErrExpired indicates a well-formed, correctly signed token whose
	// expiry has passed.
	ErrExpired = errors.New("token: token expired")

	// ErrInvalid indicates any other verification failure, such as a
	// missing subject or a rejected registered claim.
	ErrInvalid = errors.New("token: invalid token")
)

// Claims is the claim set carried by issued tokens.
type Claims struct {
	gojwt.RegisteredClaims
}

// Token describes a signed token as issued.
type Token struct {
	// Value is the compact signed representation sent to clients.
	Value string

	// Subject is the identity the token was issued for.
	Subject string

	// IssuedAt is the issuance timestamp.
	IssuedAt time.Time

	// ExpiresAt is the expiry timestamp.
	ExpiresAt time.Time
}

// TTLSeconds returns the token lifetime in whole seconds.
func (t Token) TTLSeconds() int64 {
	return int64(t.ExpiresAt.Sub(t.IssuedAt) / time.Second)
}

// Codec issues and verifies session tokens with a fixed configuration.
// The signing secret is injected once at construction.
type Codec struct {
	cfg Config
	now func() time.Time
}

// NewCodec creates a token codec from configuration.
func NewCodec(cfg Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Codec{cfg: cfg, now: time.Now}, nil
}

// Issue creates a signed token for the subject with the configured TTL.
func (c *Codec) Issue(subject string) (Token, error) {
	return c.IssueWithTTL(subject, c.cfg.TTL)
}

// IssueWithTTL creates a signed token for the subject with an explicit TTL.
// A non-positive TTL falls back to the configured default. The clock is
// read once, so expiry is always issuance plus TTL exactly.
func (c *Codec) IssueWithTTL(subject string, ttl time.Duration) (Token, error) {
	if subject == "" {
		return Token{}, errors.New("token: subject is required")
	}
	if ttl <= 0 {
		ttl = c.cfg.TTL
	}

	now := c.now()
	expires := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expires),
		},
	}

	signed, err := gojwt.NewWithClaims(c.cfg.signingMethod(), claims).SignedString(c.cfg.key())
	if err != nil {
		return Token{}, fmt.Errorf("token: sign: %w", err)
	}

	return Token{
		Value:     signed,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: expires,
	}, nil
}

// Verify checks the signature and registered claims of a raw token and
// returns its subject. Failures are reported as the package sentinels.
func (c *Codec) Verify(raw string) (string, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(raw, claims, c.keyFunc, c.parserOptions()...)
	if err != nil {
		return "", translateError(err)
	}
	if !parsed.Valid {
		return "", ErrInvalid
	}
	if claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (c *Codec) keyFunc(t *gojwt.Token) (interface{}, error) {
	expected := c.cfg.signingMethod()
	if t.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return c.cfg.key(), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (c *Codec) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(c.now),
	}
	if c.cfg.Leeway > 0 {
		opts = append(opts, gojwt.WithLeeway(c.cfg.Leeway))
	}
	if c.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(c.cfg.Issuer))
	}
	return opts
}

// translateError maps golang-jwt failures onto the package sentinels.
func translateError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrInvalid
	}
}
