package user

import (
	"context"
	"fmt"

	"tareasapi/auth/password"
	"tareasapi/auth/token"
	apperrors "tareasapi/errors"
	"tareasapi/logger"
)

// dummyPassword seeds the hash verified for unknown usernames.
const dummyPassword = "nobody-in-particular"

// Service implements the registration and login flows.
type Service struct {
	store  *Store
	hasher password.Hasher
	codec  *token.Codec
	minLen int
	log    *logger.Logger

	// dummyHash is verified when the username is unknown, so login
	// latency stays flat whether or not the account exists.
	dummyHash string
}

// NewService wires registration and login over the given store, hasher
// and token codec. The password policy comes from cfg.
func NewService(store *Store, hasher password.Hasher, codec *token.Codec, cfg password.Config, log *logger.Logger) *Service {
	cfg.ApplyDefaults()

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		// Hash only fails on an empty password or an exhausted entropy
		// source; fall back to skipping the dummy verification.
		dummyHash = ""
	}

	return &Service{
		store:     store,
		hasher:    hasher,
		codec:     codec,
		minLen:    cfg.MinLength,
		log:       log.WithComponent("user"),
		dummyHash: dummyHash,
	}
}

// Register creates a new account with a freshly hashed password.
// A taken username yields an ALREADY_EXISTS error; the store's UNIQUE
// constraint decides races, so at most one registration per username
// ever succeeds.
func (s *Service) Register(ctx context.Context, username, plainPassword string) (*User, error) {
	if username == "" {
		return nil, apperrors.MissingField("username")
	}
	if plainPassword == "" {
		return nil, apperrors.MissingField("password")
	}
	if len(plainPassword) < s.minLen {
		return nil, apperrors.Validation(fmt.Sprintf("Password must be at least %d characters long.", s.minLen))
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	u := &User{Username: username, PasswordHash: hash}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("User registered", map[string]interface{}{
		"username": username,
	})
	return u, nil
}

// ByUsername returns the account for an already-verified identity, such
// as the subject of an accepted bearer token. NOT_FOUND surfaces as-is:
// it means the account was deleted after the token was issued.
func (s *Service) ByUsername(ctx context.Context, username string) (*User, error) {
	return s.store.ByUsername(ctx, username)
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords produce the same UNAUTHORIZED error,
// and the dummy verification keeps both paths equally slow.
func (s *Service) Login(ctx context.Context, username, plainPassword string) (token.Token, error) {
	if username == "" || plainPassword == "" {
		return token.Token{}, invalidCredentials()
	}

	u, err := s.store.ByUsername(ctx, username)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
			if s.dummyHash != "" {
				_ = s.hasher.Verify(plainPassword, s.dummyHash)
			}
			return token.Token{}, invalidCredentials()
		}
		return token.Token{}, err
	}

	if err := s.hasher.Verify(plainPassword, u.PasswordHash); err != nil {
		// A malformed stored hash also lands here; it must look like a
		// plain mismatch from outside, but is worth a log line.
		if err != password.ErrMismatch {
			s.log.Warn("Stored password hash is unverifiable", map[string]interface{}{
				"username": username,
				"error":    err.Error(),
			})
		}
		return token.Token{}, invalidCredentials()
	}

	tok, err := s.codec.Issue(u.Username)
	if err != nil {
		return token.Token{}, apperrors.Internal(err)
	}

	s.log.Info("User logged in", map[string]interface{}{
		"username":    username,
		"ttl_seconds": tok.TTLSeconds(),
	})
	return tok, nil
}

// invalidCredentials is the single login failure surfaced to clients.
// Unknown-user and wrong-password are indistinguishable through it.
func invalidCredentials() *apperrors.AppError {
	return apperrors.Unauthorized("Invalid username or password.")
}
