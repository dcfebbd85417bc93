package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/mlukyanov/task-api/internal/auth/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// TouchUpdatedAt bumps updated_at, recording the last successful login.
	TouchUpdatedAt(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context) ([]model.User, error)
}
