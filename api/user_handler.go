package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tareasapi/errors"
	"tareasapi/observability"
	"tareasapi/server"
	"tareasapi/validation"
)

// credentialsRequest is the body of /registro and /login.
type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registeredResponse acknowledges a successful registration. The hash
// never appears here.
type registeredResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// loginResponse is flat on purpose: clients read token and ttl_seconds
// directly off the top level.
type loginResponse struct {
	Token      string `json:"token"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// register handles POST /registro.
func (a *API) register(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		a.metrics().RecordRegistration(c.Request.Context(), observability.OutcomeError)
		return
	}

	u, err := a.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.metrics().RecordRegistration(c.Request.Context(), registrationOutcome(err))
		server.RespondWithError(c, err)
		return
	}

	a.metrics().RecordRegistration(c.Request.Context(), observability.OutcomeSuccess)
	server.RespondCreated(c, registeredResponse{
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	})
}

// login handles POST /login.
func (a *API) login(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		a.metrics().RecordLogin(c.Request.Context(), observability.OutcomeError)
		return
	}

	tok, err := a.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.metrics().RecordLogin(c.Request.Context(), loginOutcome(err))
		server.RespondWithError(c, err)
		return
	}

	a.metrics().RecordLogin(c.Request.Context(), observability.OutcomeSuccess)
	c.JSON(http.StatusOK, loginResponse{
		Token:      tok.Value,
		TTLSeconds: tok.TTLSeconds(),
	})
}

// bindCredentials parses and validates the shared credentials body.
// On failure the error response has already been written.
func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body must be JSON with username and password."))
		return req, false
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return req, false
	}
	return req, true
}

func registrationOutcome(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeAlreadyExists {
		return observability.OutcomeConflict
	}
	return observability.OutcomeError
}

func loginOutcome(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeUnauthorized {
		return observability.OutcomeRejected
	}
	return observability.OutcomeError
}
