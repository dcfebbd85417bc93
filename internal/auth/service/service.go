package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mlukyanov/task-api/internal/auth/dto"
	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/auth/jwt"
	"github.com/mlukyanov/task-api/internal/auth/model"
	"github.com/mlukyanov/task-api/internal/auth/password"
	"github.com/mlukyanov/task-api/internal/repo"
)

type AuthResult struct {
	User   model.User
	Tokens model.TokenPair
}

type RefreshResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (AuthResult, error)
	Login(ctx context.Context, in dto.LoginDTO) (AuthResult, error)
	Refresh(ctx context.Context, in dto.RefreshDTO) (RefreshResult, error)
	Logout(ctx context.Context, in dto.LogoutDTO) error
	CurrentUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	userRepo repo.UserRepo
	denylist repo.TokenDenylist
	tokens   jwt.TokenManager
	policy   *password.Policy
	v        *validator.Validate

	// hash verified on the unknown-user login path so that path costs
	// about the same as a real password check
	dummyHash string
}

func New(
	ur repo.UserRepo,
	dl repo.TokenDenylist,
	tm jwt.TokenManager,
	policy *password.Policy,
	v *validator.Validate,
) (Service, error) {
	dummy, err := policy.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &authService{
		userRepo:  ur,
		denylist:  dl,
		tokens:    tm,
		policy:    policy,
		v:         v,
		dummyHash: dummy,
	}, nil
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (AuthResult, error) {
	if err := a.v.Struct(in); err != nil {
		return AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	if ok, violations := a.policy.Validate(in.Password); !ok {
		return AuthResult{}, customErrors.NewWeakPassword(violations)
	}

	email := normalizeEmail(in.Email)
	if _, err := a.userRepo.GetUserByEmail(ctx, email); err == nil {
		return AuthResult{}, customErrors.ErrAlreadyExists
	} else if !errors.Is(err, customErrors.ErrNotFound) {
		return AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	hash, err := a.policy.Hash(in.Password)
	if err != nil {
		return AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		// two racing registrations can both pass the lookup; the store's
		// unique constraint is the final word
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return AuthResult{}, customErrors.ErrAlreadyExists
		}
		return AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	pair, err := a.issueTokens(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: publicUser(user), Tokens: pair}, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (AuthResult, error) {
	if err := a.v.Struct(in); err != nil {
		return AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// same error and similar timing whether the account exists or not
		_, _ = a.policy.Verify(a.dummyHash, in.Password)
		return AuthResult{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.policy.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		return AuthResult{}, customErrors.ErrInvalidCredentials
	}

	if err := a.userRepo.TouchUpdatedAt(ctx, user.ID); err != nil {
		return AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	pair, err := a.issueTokens(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: publicUser(user), Tokens: pair}, nil
}

// Refresh mints a new access token. The refresh token itself is not
// rotated; it stays valid until its own expiry.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (RefreshResult, error) {
	if err := a.v.Struct(in); err != nil {
		return RefreshResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return RefreshResult{}, err
	}

	revoked, err := a.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return RefreshResult{}, customErrors.WrapInternal(err, "Refresh")
	}
	if revoked {
		return RefreshResult{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return RefreshResult{}, customErrors.ErrInvalidToken
	}
	user, err := a.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return RefreshResult{}, customErrors.ErrNotFound
		}
		return RefreshResult{}, customErrors.WrapInternal(err, "Refresh")
	}

	access, exp, _, err := a.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return RefreshResult{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	return RefreshResult{AccessToken: access, ExpiresAt: exp}, nil
}

func (a *authService) Logout(ctx context.Context, in dto.LogoutDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	if err := a.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return model.User{}, customErrors.ErrNotFound
		}
		return model.User{}, customErrors.WrapInternal(err, "CurrentUser")
	}
	return publicUser(user), nil
}

func (a *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := a.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListUsers")
	}
	for i := range users {
		users[i] = publicUser(users[i])
	}
	return users, nil
}

func (a *authService) issueTokens(user model.User) (model.TokenPair, error) {
	at, atExp, _, err := a.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, jti, err := a.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:     at,
		RefreshToken:    rt,
		AccessTTL:       atExp.Sub(now),
		RefreshTTL:      rtExp.Sub(now),
		UserID:          user.ID,
		RefreshTokenJTI: jti,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func publicUser(u model.User) model.User {
	u.PasswordHash = ""
	return u
}
