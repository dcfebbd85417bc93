package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "access-secret",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		Issuer:           "task-api",
	}
}

func TestTokenManager_GenerateValidate(t *testing.T) {
	tm := NewTokenManager(testConfig())
	uid := uuid.New()

	token, exp, jti, err := tm.GenerateAccessToken(uid, "user")
	if err != nil || exp.IsZero() || jti == "" {
		t.Fatalf("bad generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := tm.ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != uid.String() {
		t.Fatalf("want %s got %s", uid, claims.Subject)
	}
	if claims.Role != "user" {
		t.Fatalf("role: %q", claims.Role)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Second
	tm := NewTokenManager(cfg)

	token, _, _, err := tm.GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tm.ValidateAccessToken(token); !customErrors.IsTokenExpired(err) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	tm := NewTokenManager(testConfig())
	otherCfg := testConfig()
	otherCfg.Issuer = "someone-else"
	other := NewTokenManager(otherCfg)

	token, _, _, _ := other.GenerateAccessToken(uuid.New(), "user")
	if _, err := tm.ValidateAccessToken(token); !customErrors.IsWrongIssuer(err) {
		t.Fatalf("expected wrong issuer error, got %v", err)
	}
}

func TestTokenManager_BadSignature(t *testing.T) {
	tm := NewTokenManager(testConfig())
	otherCfg := testConfig()
	otherCfg.JWTSecret = "other-secret"
	other := NewTokenManager(otherCfg)

	token, _, _, _ := other.GenerateAccessToken(uuid.New(), "user")
	if _, err := tm.ValidateAccessToken(token); !customErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager(testConfig())
	if _, err := tm.ValidateAccessToken("not.a.jwt"); !customErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestTokenManager_InvalidAlg(t *testing.T) {
	tm := NewTokenManager(testConfig())
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{"sub": "1"}).
		SignedString([]byte("access-secret"))
	if _, err := tm.ValidateAccessToken(token); !customErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid alg error, got %v", err)
	}
}

func TestTokenManager_RefreshCycle(t *testing.T) {
	tm := NewTokenManager(testConfig())
	uid := uuid.New()

	token, exp, jti, err := tm.GenerateRefreshToken(uid)
	if err != nil || exp.IsZero() || jti == "" {
		t.Fatalf("bad generate: %v", err)
	}
	claims, err := tm.ValidateRefreshToken(token)
	if err != nil || claims.Subject != uid.String() {
		t.Fatalf("validate error: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Fatalf("typ: %q", claims.TokenType)
	}
}

func TestTokenManager_RefreshUsedAsAccess(t *testing.T) {
	tm := NewTokenManager(testConfig())
	token, _, _, _ := tm.GenerateRefreshToken(uuid.New())
	if _, err := tm.ValidateAccessToken(token); !customErrors.IsWrongTokenType(err) {
		t.Fatalf("expected wrong token type error, got %v", err)
	}
}

func TestTokenManager_AccessUsedAsRefresh(t *testing.T) {
	tm := NewTokenManager(testConfig())
	token, _, _, _ := tm.GenerateAccessToken(uuid.New(), "user")
	if _, err := tm.ValidateRefreshToken(token); !customErrors.IsWrongTokenType(err) {
		t.Fatalf("expected wrong token type error, got %v", err)
	}
}

func TestTokenManager_ExpiredRefresh(t *testing.T) {
	cfg := testConfig()
	cfg.RefreshTokenTTL = -time.Second
	tm := NewTokenManager(cfg)

	token, _, _, err := tm.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tm.ValidateRefreshToken(token); !customErrors.IsTokenExpired(err) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestTokenManager_DistinctRefreshSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTRefreshSecret = "refresh-secret"
	tm := NewTokenManager(cfg)

	token, _, _, _ := tm.GenerateRefreshToken(uuid.New())
	if _, err := tm.ValidateRefreshToken(token); err != nil {
		t.Fatal(err)
	}
	// signed with the refresh secret, must not verify as an access token
	if _, err := tm.ValidateAccessToken(token); err == nil {
		t.Fatal("refresh token verified with access secret")
	}
}
