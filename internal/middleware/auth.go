package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/service/auth"
	"github.com/vidamais/portal-api/pkg/httputil"
)

// ContextCaller is the gin context key holding the authenticated caller.
const ContextCaller = "caller"

type AuthMiddleware struct {
	authService *auth.Service
	// claims cache keyed by raw token, bounded by token expiry
	cache *cache.Cache
}

func NewAuthMiddleware(authService *auth.Service, cacheTTL time.Duration) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		cache:       cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Authenticate verifies the bearer token and sets the caller in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithStatus(c, http.StatusUnauthorized, "invalid authorization format")
			c.Abort()
			return
		}
		token := parts[1]

		if cached, ok := m.cache.Get(token); ok {
			c.Set(ContextCaller, cached.(model.Caller))
			c.Next()
			return
		}

		caller, err := m.authService.CallerFromToken(c.Request.Context(), token)
		if err != nil {
			httputil.RespondWithStatus(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		m.cache.Set(token, caller, cache.DefaultExpiration)
		c.Set(ContextCaller, caller)
		c.Next()
	}
}

// RequireAdmin rejects non-staff callers. It runs after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok || !caller.IsAdmin() {
			httputil.RespondWithStatus(c, http.StatusForbidden, "staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom extracts the authenticated caller from the gin context.
func CallerFrom(c *gin.Context) (model.Caller, bool) {
	v, exists := c.Get(ContextCaller)
	if !exists {
		return model.Caller{}, false
	}
	caller, ok := v.(model.Caller)
	return caller, ok
}
