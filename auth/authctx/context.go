// Package authctx provides type-safe context propagation for the
// authenticated identity.
//
// The auth middleware stores the verified identity with Set; handlers
// behind it retrieve it with Get or MustGet.
package authctx

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// identityKey is the single key used to store the identity in context.
var identityKey = contextKey{}

// ErrNoIdentity is returned when no identity is found in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// Set stores the authenticated identity in the context.
func Set(ctx context.Context, identity any) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Get retrieves the typed identity from the context.
// Returns the identity and true if found and of the correct type,
// or zero value and false otherwise.
func Get[T any](ctx context.Context) (T, bool) {
	val := ctx.Value(identityKey)
	if val == nil {
		var zero T
		return zero, false
	}
	identity, ok := val.(T)
	return identity, ok
}

// MustGet retrieves the typed identity from the context.
// Panics if the identity is missing or of the wrong type.
// Use in handlers where auth middleware guarantees the identity exists.
func MustGet[T any](ctx context.Context) T {
	identity, ok := Get[T](ctx)
	if !ok {
		panic("authctx: identity not found in context or wrong type")
	}
	return identity
}

// GetOrError retrieves the typed identity from the context.
// Returns ErrNoIdentity if the identity is missing or of the wrong type.
func GetOrError[T any](ctx context.Context) (T, error) {
	identity, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, ErrNoIdentity
	}
	return identity, nil
}
