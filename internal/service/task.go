package service

import (
	"context"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if t.Status == "" { // Статус по умолчанию
		t.Status = model.StatusPending
	}
	if err := ValidateTask(t); err != nil { // Валидация модели на корректность введенных данных
		return model.Task{}, err
	}
	t.ID = ""
	return s.repo.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, id string) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// Update applies the non-empty fields of patch and validates the resulting
// task as a whole, so a partial update can't leave an invalid record behind.
func (s *TaskService) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	return s.repo.Update(ctx, id, func(t *model.Task) error {
		patch.Apply(t)
		return ValidateTask(*t)
	})
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) GetStats(ctx context.Context) (repo.Stats, error) {
	return s.repo.GetStats(ctx)
}
