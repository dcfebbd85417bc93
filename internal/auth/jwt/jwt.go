package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeRefresh is the value of the "typ" claim carried by refresh
// tokens and by refresh tokens only. Access tokens must never carry it,
// which is what keeps the two token classes from being swapped.
const TokenTypeRefresh = "refresh"

type AccessClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenType string `json:"typ,omitempty"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (token string, exp time.Time, jti string, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, jti string, err error)
	ValidateAccessToken(token string) (claims AccessClaims, err error)
	ValidateRefreshToken(token string) (claims RefreshClaims, err error)
}
