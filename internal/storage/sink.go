package storage

import (
	"context"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// Sink определяет интерфейс хранилища: коллекция задач читается и пишется целиком
type Sink interface {
	// Load returns the stored collection in insertion order. A missing backing
	// store yields an empty collection, not an error.
	Load(ctx context.Context) ([]model.Task, error)
	// Save replaces the backing store with tasks.
	Save(ctx context.Context, tasks []model.Task) error
}
