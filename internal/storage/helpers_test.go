package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "3", Title: "Buy milk", Status: model.StatusPending, DueDate: "2024-12-01"},
		{ID: "1", Title: "Write report", Description: "quarterly", Status: model.StatusCompleted, DueDate: "2024-11-30", Category: "work", User: "u1"},
		{ID: "2", Title: "Call mom", Status: model.StatusPending, DueDate: "2024-12-01", User: "u2"},
	}
}

// flakySink fails the first failures Saves, then delegates to an in-memory copy.
type flakySink struct {
	mu       sync.Mutex
	failures int
	calls    int
	saved    []model.Task
}

var errDiskFull = errors.New("disk full")

func (s *flakySink) Load(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task{}, s.saved...), nil
}

func (s *flakySink) Save(ctx context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errDiskFull
	}
	s.saved = append([]model.Task{}, tasks...)
	return nil
}
