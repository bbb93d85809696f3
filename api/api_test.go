package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareasapi/api"
	"tareasapi/auth"
	"tareasapi/auth/password"
	"tareasapi/auth/token"
	"tareasapi/database/testutil"
	apperrors "tareasapi/errors"
	"tareasapi/logger"
	"tareasapi/task"
	"tareasapi/user"
)

func init() { gin.SetMode(gin.TestMode) }

// newTestRouter wires the full API over a migrated temp database, with
// the argon2 hasher turned down to test speed.
func newTestRouter(t *testing.T) (*gin.Engine, *token.Codec) {
	t.Helper()

	db := testutil.Open(t)
	log := logger.NewDefault("api-test")

	hasher := password.NewArgon2Hasher(password.WithArgon2Memory(8 * 1024))
	codec, err := token.NewCodec(token.Config{Secret: "api-test-secret"})
	require.NoError(t, err)

	users := user.NewService(user.NewStore(db), hasher, codec, password.Config{}, log)
	tasks := task.NewStore(db)

	engine := gin.New()
	api.New(users, tasks, log, nil).Register(engine, auth.NewVerifier(codec), 0)
	return engine, codec
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp.Error.Code
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

// TestRegisterLoginAccessScenario walks the whole credential flow over
// HTTP: register, duplicate conflict, login, protected access with a
// valid, absent and tampered bearer token.
func TestRegisterLoginAccessScenario(t *testing.T) {
	engine, _ := newTestRouter(t)

	// Register.
	rec := doJSON(t, engine, http.MethodPost, "/registro", "", credentials("manu", "1234"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			Username  string `json:"username"`
			CreatedAt string `json:"created_at"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "manu", created.Data.Username)
	assert.NotEmpty(t, created.Data.CreatedAt)
	assert.NotContains(t, rec.Body.String(), "1234", "password never echoes back")

	// Same username again conflicts, regardless of password.
	rec = doJSON(t, engine, http.MethodPost, "/registro", "", credentials("manu", "9999"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperrors.ErrCodeAlreadyExists, errorCode(t, rec))

	// Login.
	rec = doJSON(t, engine, http.MethodPost, "/login", "", credentials("manu", "1234"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token      string `json:"token"`
		TTLSeconds int64  `json:"ttl_seconds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, int64(3600), login.TTLSeconds)

	// Valid token reaches the protected page.
	rec = doJSON(t, engine, http.MethodGet, "/tareas", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "manu")

	// No Authorization header: 401 with the how-to-authenticate help.
	rec = doJSON(t, engine, http.MethodGet, "/tareas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization: Bearer")

	// One character changed anywhere in the token: uniform 401.
	tampered := tamper(login.Token)
	rec = doJSON(t, engine, http.MethodGet, "/tareas", tampered, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, errorCode(t, rec))
}

// tamper changes one character in the middle of a token. The midpoint
// lands in the signed payload, so the altered token cannot verify.
func tamper(tok string) string {
	i := len(tok) / 2
	for tok[i] == '.' {
		i++
	}
	replacement := byte('A')
	if tok[i] == 'A' {
		replacement = 'B'
	}
	return tok[:i] + string(replacement) + tok[i+1:]
}

func TestLoginFailuresAreUniform(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/registro", "", credentials("manu", "1234"))
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doJSON(t, engine, http.MethodPost, "/login", "", credentials("manu", "bad"))
	unknownUser := doJSON(t, engine, http.MethodPost, "/login", "", credentials("nobody", "1234"))

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String(),
		"wrong password and unknown user must be indistinguishable")
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	engine, _ := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing password", map[string]string{"username": "manu"}},
		{"missing username", map[string]string{"password": "1234"}},
		{"empty username", credentials("", "1234")},
		{"empty password", credentials("manu", "")},
		{"not json", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/registro", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/registro", "", credentials("manu", "1234"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// A second codec with the same secret signs compatibly; its tokens
	// live one nanosecond and are expired by the time the request runs.
	shortLived, err := token.NewCodec(token.Config{Secret: "api-test-secret", TTL: time.Nanosecond})
	require.NoError(t, err)
	tok, err := shortLived.Issue("manu")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	rec = doJSON(t, engine, http.MethodGet, "/tareas", tok.Value, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, errorCode(t, rec))
}

func TestValidTokenForDeletedAccountRejected(t *testing.T) {
	engine, codec := newTestRouter(t)

	tok, err := codec.Issue("ghost")
	require.NoError(t, err)

	rec := doJSON(t, engine, http.MethodGet, "/tareas/json", tok.Value, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, errorCode(t, rec))
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	engine, _ := newTestRouter(t)
	tok := registerAndLogin(t, engine, "manu", "1234")

	// Starts empty.
	rec := doJSON(t, engine, http.MethodGet, "/tareas/json", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []task.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Data)

	// Create.
	rec = doJSON(t, engine, http.MethodPost, "/tareas", tok, map[string]string{"title": "comprar pan"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data task.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.Data.ID)
	assert.Equal(t, "comprar pan", created.Data.Title)
	assert.False(t, created.Data.Done)

	// Missing title is a validation error.
	rec = doJSON(t, engine, http.MethodPost, "/tareas", tok, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Update.
	rec = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/tareas/%d", created.Data.ID), tok,
		map[string]any{"done": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Data task.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Data.Done)
	assert.Equal(t, "comprar pan", updated.Data.Title)

	// The protected page now lists it.
	rec = doJSON(t, engine, http.MethodGet, "/tareas", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "comprar pan")

	// Delete.
	rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/tareas/%d", created.Data.ID), tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/tareas/%d", created.Data.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasksAreScopedToOwner(t *testing.T) {
	engine, _ := newTestRouter(t)
	tokA := registerAndLogin(t, engine, "ana", "secretA")
	tokB := registerAndLogin(t, engine, "bruno", "secretB")

	rec := doJSON(t, engine, http.MethodPost, "/tareas", tokA, map[string]string{"title": "solo de ana"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data task.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Bruno cannot see, update or delete Ana's task.
	rec = doJSON(t, engine, http.MethodGet, "/tareas/json", tokB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "solo de ana")

	rec = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/tareas/%d", created.Data.ID), tokB,
		map[string]any{"done": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/tareas/%d", created.Data.ID), tokB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Still there for Ana.
	rec = doJSON(t, engine, http.MethodGet, "/tareas/json", tokA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "solo de ana")
}

func TestPublicPages(t *testing.T) {
	engine, _ := newTestRouter(t)

	for _, path := range []string{"/", "/ui"} {
		rec := doJSON(t, engine, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}

func registerAndLogin(t *testing.T, engine *gin.Engine, username, password string) string {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/registro", "", credentials(username, password))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/login", "", credentials(username, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}
