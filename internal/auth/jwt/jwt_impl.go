package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/config"
)

type tokenManagerImpl struct {
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewTokenManager(cfg *config.Config) *tokenManagerImpl {
	return &tokenManagerImpl{
		secret:        []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.Issuer,
	}
}

func (m *tokenManagerImpl) GenerateAccessToken(userID uuid.UUID, role string) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			Issuer:    m.issuer,
			ID:        jti,
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (m *tokenManagerImpl) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			Issuer:    m.issuer,
			ID:        jti,
		},
		TokenType: TokenTypeRefresh,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (m *tokenManagerImpl) ValidateAccessToken(raw string) (AccessClaims, error) {
	var claims AccessClaims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return AccessClaims{}, mapTokenError(err)
	}
	if !token.Valid {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}
	// a refresh token must never pass as an access token
	if claims.TokenType != "" {
		return AccessClaims{}, customErrors.ErrWrongTokenType
	}
	return claims, nil
}

func (m *tokenManagerImpl) ValidateRefreshToken(raw string) (RefreshClaims, error) {
	var claims RefreshClaims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) { return m.refreshSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return RefreshClaims{}, mapTokenError(err)
	}
	if !token.Valid {
		return RefreshClaims{}, customErrors.ErrInvalidToken
	}
	if claims.TokenType != TokenTypeRefresh {
		return RefreshClaims{}, customErrors.ErrWrongTokenType
	}
	return claims, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return customErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return customErrors.ErrWrongIssuer
	default:
		return customErrors.ErrInvalidToken
	}
}
