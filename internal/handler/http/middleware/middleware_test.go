package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, svc jwt.Service) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.Get("/read", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.With(RequirePermission(user.PermissionPayrollDelete)).
		Delete("/payroll", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	return r
}

func bearer(t *testing.T, svc jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(1, "tester", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthAndPermission(t *testing.T) {
	svc, err := jwt.NewJWTService("middleware-test-secret", "1h")
	require.NoError(t, err)
	router := newRouter(t, svc)

	_, refreshLike, err := svc.JWTAuth().Encode(map[string]interface{}{"user_id": 1, "role": "Admin", "type": "refresh"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"no token", http.MethodGet, "/read", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/read", "Bearer nope", http.StatusUnauthorized},
		{"wrong token type", http.MethodGet, "/read", "Bearer " + refreshLike, http.StatusUnauthorized},
		{"user reads", http.MethodGet, "/read", bearer(t, svc, user.RoleUser), http.StatusNoContent},
		{"hr cannot delete", http.MethodDelete, "/payroll", bearer(t, svc, user.RoleHR), http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/payroll", bearer(t, svc, user.RoleAdmin), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
