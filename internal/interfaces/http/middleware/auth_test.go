package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/auth"
	"tickettracker/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (n nopLogger) With(...any) logger.Interface  { return n }
func (n nopLogger) Named(string) logger.Interface { return n }
func (nopLogger) Debugw(string, ...any)           {}
func (nopLogger) Infow(string, ...any)            {}
func (nopLogger) Warnw(string, ...any)            {}
func (nopLogger) Errorw(string, ...any)           {}

type stubUsers struct {
	users map[uint]*user.User
}

func (s *stubUsers) Create(context.Context, *user.User) error { return nil }

func (s *stubUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUsers) GetByUsername(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (s *stubUsers) ListStaff(context.Context) ([]*user.User, error) { return nil, nil }

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtSvc := auth.NewJWTService("test-secret", 10)
	users := &stubUsers{users: map[uint]*user.User{
		1: user.ReconstructUser(1, "alice", "alice@example.com", "", "", false, false, true, nil, time.Now()),
		2: user.ReconstructUser(2, "gone", "gone@example.com", "", "", false, false, false, nil, time.Now()),
	}}
	m := NewAuthMiddleware(jwtSvc, users, nopLogger{})

	r := gin.New()
	whoami := func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username())
			return
		}
		c.String(http.StatusOK, "anonymous")
	}
	r.GET("/required", m.RequireAuth(), whoami)
	r.GET("/optional", m.OptionalAuth(), whoami)
	return r, jwtSvc
}

func tokenFor(t *testing.T, svc *auth.JWTService, id uint, username string) string {
	t.Helper()
	token, _, err := svc.Generate(id, username)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	r, svc := newAuthRouter(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + tokenFor(t, svc, 1, "alice"), http.StatusOK, "alice"},
		{"missing header", "", http.StatusUnauthorized, "missing authorization token"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "missing authorization token"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "invalid or expired token"},
		{"unknown user", "Bearer " + tokenFor(t, svc, 99, "ghost"), http.StatusUnauthorized, "invalid or expired token"},
		{"inactive user", "Bearer " + tokenFor(t, svc, 2, "gone"), http.StatusUnauthorized, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/required", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r, svc := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, 1, "alice"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "alice", w.Body.String())
}
