package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tareasapi/auth"
	"tareasapi/auth/authctx"
	apperrors "tareasapi/errors"
	"tareasapi/logger"
	"tareasapi/observability"
)

// bearerHelp tells clients how to authenticate. It is sent whenever the
// bearer credential is absent, as opposed to present but unverifiable.
const bearerHelp = "Authentication required. Send 'Authorization: Bearer <token>'."

// RequireAuth returns the gate protecting authenticated routes.
//
// A request without a bearer credential gets a 401 with the help message.
// A request whose token fails verification for any reason, bad signature,
// expired or malformed alike, gets one uniform 401: the distinction stays
// in the debug log and never reaches the client. On success the verified
// identity is stored on the request context for the handler.
func RequireAuth(verifier auth.TokenVerifier, log *logger.Logger, metrics func() *observability.Metrics) gin.HandlerFunc {
	if metrics == nil {
		metrics = func() *observability.Metrics { return nil }
	}

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			metrics().RecordTokenRejection(c.Request.Context(), observability.RejectionMissing)
			abortWith(c, apperrors.Unauthorized(bearerHelp))
			return
		}

		identity, err := verifier.VerifyToken(raw)
		if err != nil {
			log.Debug("Bearer token rejected", map[string]interface{}{
				"reason": err.Error(),
			})
			metrics().RecordTokenRejection(c.Request.Context(), observability.RejectionInvalid)
			abortWith(c, apperrors.InvalidToken())
			return
		}

		ctx := authctx.Set(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Set(logger.FieldUserID, identity.Username)
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value.
// The scheme match is case-insensitive; a missing or non-Bearer header, or
// an empty credential, reports false.
func bearerToken(header string) (string, bool) {
	scheme, credential, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", false
	}
	return credential, true
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
