// Package auth defines the authentication contracts shared by the HTTP
// layer and the credential services.
//
// The root package holds the TokenVerifier interface and the Identity
// carried through request context. Subpackages provide the concrete
// pieces: password hashes credentials at rest, token issues and verifies
// signed session tokens, and authctx propagates the verified identity.
package auth
