package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page     int    `json:"page"`
		PageSize int    `json:"pageSize"`
		Total    int64  `json:"total"`
		SortBy   string `json:"sortBy"`
		SortDir  string `json:"sortDir"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"secret"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec.Body.Bytes())
		assert.True(t, env.Success)

		var token struct {
			AccessToken string `json:"accessToken"`
			Role        string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &token))
		assert.Equal(t, "Admin", token.Role)

		me := s.do(t, http.MethodGet, "/api/v1/auth/me", token.AccessToken, "")
		assert.Equal(t, http.StatusOK, me.Code)
		assert.Contains(t, me.Body.String(), `"username":"admin"`)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		env := decodeEnvelope(t, rec.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "Invalid username or password", env.Message)
	})

	t.Run("missing fields are 422", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"username":""}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateUser(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{"username":"clerk","password":"secret1","role":"HR"}`

	rec := s.do(t, http.MethodPost, "/api/v1/users", s.token(t, user.RoleHR), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/users", s.token(t, user.RoleAdmin), body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/users", s.token(t, user.RoleAdmin), `{"username":"taken","password":"secret1","role":"User"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
