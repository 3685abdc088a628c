package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/itsivali/careconnect-v1/pkg/auth"
)

const (
	ContextClaims = "auth_claims"

	claimsCacheTTL = time.Minute
)

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthMiddleware guards routes behind a bearer token. Validated claims
// are cached briefly so hot clients don't re-verify on every request.
type AuthMiddleware struct {
	validator TokenValidator
	claims    *cache.Cache
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		claims:    cache.New(claimsCacheTTL, 5*time.Minute),
	}
}

func (m *AuthMiddleware) RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := m.lookup(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) lookup(token string) (*auth.Claims, error) {
	if cached, ok := m.claims.Get(token); ok {
		return cached.(*auth.Claims), nil
	}
	claims, err := m.validator.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	m.claims.SetDefault(token, claims)
	return claims, nil
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
