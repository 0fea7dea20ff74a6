package repo

import (
	"context"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	// Update applies fn to a copy of the stored task and commits the copy
	// only if fn returns nil.
	Update(ctx context.Context, id string, fn func(*model.Task) error) (model.Task, error)
	Delete(ctx context.Context, id string) error
	GetStats(ctx context.Context) (Stats, error)
}

type Stats struct {
	TotalTasks int            `json:"total_tasks"`
	ByStatus   map[string]int `json:"by_status"`
}
