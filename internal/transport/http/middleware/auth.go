package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/auth/jwt"
	"github.com/mlukyanov/task-api/internal/auth/model"
)

const (
	principalKey = "principal"
	bearerPrefix = "Bearer "
)

// Authenticate requires a valid bearer access token and attaches the
// resulting principal to the request context.
func Authenticate(tm jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromHeader(c, tm)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present but
// never rejects the request. Endpoints behind it decide for themselves
// what anonymous callers may see.
func OptionalAuth(tm jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, err := principalFromHeader(c, tm); err == nil {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

// Authorize gates a route on the principal's role. It must run after
// Authenticate.
func Authorize(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			_ = c.Error(customErrors.ErrNotAuthenticated)
			c.Abort()
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		_ = c.Error(customErrors.ErrForbidden)
		c.Abort()
	}
}

// PrincipalFrom returns the authenticated identity attached by
// Authenticate or OptionalAuth.
func PrincipalFrom(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}

func principalFromHeader(c *gin.Context, tm jwt.TokenManager) (model.Principal, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return model.Principal{}, customErrors.ErrMissingToken
	}

	claims, err := tm.ValidateAccessToken(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return model.Principal{}, err
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, customErrors.ErrInvalidToken
	}
	return model.Principal{UserID: uid, Role: model.Role(claims.Role)}, nil
}
