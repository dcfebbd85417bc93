package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/task"
)

type PostgresTaskRepo struct {
	db *gorm.DB
}

func NewPostgresTaskRepo(db *gorm.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

func (p *PostgresTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	res := p.db.WithContext(ctx).Create(&t)
	if err := res.Error; err != nil {
		return task.Task{}, customErrors.WrapInternal(err, "CreateTask")
	}
	return t, nil
}

func (p *PostgresTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	var t task.Task
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return task.Task{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return task.Task{}, customErrors.WrapInternal(err, "GetTaskByID")
	}
	return t, nil
}

func (p *PostgresTaskRepo) List(ctx context.Context, userID uuid.UUID, f task.ListFilter) ([]task.Task, int64, error) {
	q := p.db.WithContext(ctx).Model(&task.Task{}).Where("user_id = ?", userID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "CountTasks")
	}

	var tasks []task.Task
	res := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&tasks)
	if err := res.Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListTasks")
	}
	return tasks, total, nil
}

func (p *PostgresTaskRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	res := p.db.WithContext(ctx).Save(&t)
	if err := res.Error; err != nil {
		return task.Task{}, customErrors.WrapInternal(err, "UpdateTask")
	}
	return t, nil
}

func (p *PostgresTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&task.Task{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteTask")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
