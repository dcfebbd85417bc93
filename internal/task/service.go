package task

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Repo interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]Task, int64, error)
	Update(ctx context.Context, t Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID, f ListFilter) (Page, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (Task, error)
	Create(ctx context.Context, userID uuid.UUID, in CreateDTO) (Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, in UpdateDTO) (Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskService struct {
	repo Repo
	v    *validator.Validate
}

func NewService(repo Repo, v *validator.Validate) Service {
	return &taskService{repo: repo, v: v}
}

func (s *taskService) List(ctx context.Context, userID uuid.UUID, f ListFilter) (Page, error) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Status != "" && !f.Status.Valid() {
		return Page{}, customErrors.NewInvalidArgument("unknown status")
	}

	tasks, total, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Data: tasks,
		Pagination: Pagination{
			Total:   total,
			Limit:   f.Limit,
			Offset:  f.Offset,
			HasMore: int64(f.Offset+len(tasks)) < total,
		},
	}, nil
}

// Get returns the task only to its owner; a foreign task id yields
// forbidden rather than not-found so the caller knows it exists but is
// off limits.
func (s *taskService) Get(ctx context.Context, userID, taskID uuid.UUID) (Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	if t.UserID != userID {
		return Task{}, customErrors.ErrForbidden
	}
	return t, nil
}

func (s *taskService) Create(ctx context.Context, userID uuid.UUID, in CreateDTO) (Task, error) {
	if err := s.v.Struct(in); err != nil {
		return Task{}, customErrors.NewInvalidArgument(err.Error())
	}

	priority := 2
	if in.Priority != nil {
		priority = *in.Priority
	}

	now := time.Now()
	t := Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      StatusPending,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(ctx, t)
}

func (s *taskService) Update(ctx context.Context, userID, taskID uuid.UUID, in UpdateDTO) (Task, error) {
	if err := s.v.Struct(in); err != nil {
		return Task{}, customErrors.NewInvalidArgument(err.Error())
	}
	if in.Status != nil && !in.Status.Valid() {
		return Task{}, customErrors.NewInvalidArgument("unknown status")
	}

	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return Task{}, err
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	t.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return Task{}, err
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil && !errors.Is(err, customErrors.ErrNotFound) {
		return err
	}
	return nil
}
