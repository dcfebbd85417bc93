package task

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateDTO struct {
	Title       string     `json:"title"       validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=10000"`
	Priority    *int       `json:"priority"    validate:"omitempty,min=0,max=4"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateDTO struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	Status      *Status    `json:"status"`
	Priority    *int       `json:"priority"    validate:"omitempty,min=0,max=4"`
	DueDate     *time.Time `json:"dueDate"`
}

type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

type Page struct {
	Data       []Task     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}
