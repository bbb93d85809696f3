package auth

import "tareasapi/auth/token"

// Identity is the authenticated caller attached to a request once its
// bearer token has been verified.
type Identity struct {
	Username string
}

// TokenVerifier verifies a raw token string and returns the identity it
// carries. Middleware depends on this interface rather than a concrete
// codec, so the signing scheme can change without touching the request path.
type TokenVerifier interface {
	VerifyToken(token string) (Identity, error)
}

// TokenVerifierFunc adapts an ordinary function to the TokenVerifier interface.
type TokenVerifierFunc func(token string) (Identity, error)

// VerifyToken implements TokenVerifier.
func (f TokenVerifierFunc) VerifyToken(token string) (Identity, error) {
	return f(token)
}

// NewVerifier adapts a token codec to the TokenVerifier interface.
// The token subject becomes the identity's username.
func NewVerifier(codec *token.Codec) TokenVerifier {
	return TokenVerifierFunc(func(raw string) (Identity, error) {
		subject, err := codec.Verify(raw)
		if err != nil {
			return Identity{}, err
		}
		return Identity{Username: subject}, nil
	})
}
