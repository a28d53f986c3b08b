package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/auth"
	"tickettracker/internal/shared/constants"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      user.Repository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, users user.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token for an active
// user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		u, err := m.resolve(c, token)
		if err != nil {
			m.logger.Warnw("failed to authenticate request", "error", err, "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setUser(c, u)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if u, err := m.resolve(c, token); err == nil {
				setUser(c, u)
			} else {
				m.logger.Debugw("ignoring invalid token on optional auth route", "error", err)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context, token string) (*user.User, error) {
	claims, err := m.jwtService.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := m.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, auth.ErrInvalidToken
	}
	return u, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setUser(c *gin.Context, u *user.User) {
	c.Set(constants.ContextKeyUser, u)
	c.Set(constants.ContextKeyUserID, u.ID())
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *user.User {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
