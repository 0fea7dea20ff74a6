package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// memSink - хранилище в памяти, считает вызовы Save
type memSink struct {
	mu      sync.Mutex
	stored  []model.Task
	saves   int
	saveErr error
	delay   time.Duration
}

func (s *memSink) Load(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task{}, s.stored...), nil
}

func (s *memSink) Save(ctx context.Context, tasks []model.Task) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored = append([]model.Task{}, tasks...)
	return nil
}

func (s *memSink) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func setupRepo(t *testing.T, sink *memSink) *TaskRepo {
	t.Helper()
	r := NewTaskRepo(sink, &SequentialGenerator{}, time.Second, zap.NewNop())
	require.NoError(t, r.Load(context.Background()))
	return r
}

func newTask(title string) model.Task {
	return model.Task{Title: title, Status: model.StatusPending, DueDate: "2024-12-01"}
}

func TestTaskRepo_Create(t *testing.T) {
	sink := &memSink{}
	r := setupRepo(t, sink)
	ctx := context.Background()

	created, err := r.Create(ctx, newTask("Buy milk"))
	require.NoError(t, err)

	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, 1, sink.saveCount())
	assert.Equal(t, []model.Task{created}, sink.stored)
}

func TestTaskRepo_Get(t *testing.T) {
	r := setupRepo(t, &memSink{})
	ctx := context.Background()

	created, err := r.Create(ctx, newTask("Buy milk"))
	require.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := r.Get(ctx, "42")
		assert.ErrorIs(t, err, ErrorNotFound)

		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "42", nf.ID)
		assert.Equal(t, "task 42 not found", err.Error())
	})
}

func TestTaskRepo_List(t *testing.T) {
	sink := &memSink{}
	r := setupRepo(t, sink)
	ctx := context.Background()

	statuses := []string{model.StatusPending, model.StatusCompleted, model.StatusPending, model.StatusCompleted}
	var completed []model.Task
	for i, s := range statuses {
		task := newTask(fmt.Sprintf("Task %d", i))
		task.Status = s
		created, err := r.Create(ctx, task)
		require.NoError(t, err)
		if s == model.StatusCompleted {
			completed = append(completed, created)
		}
	}
	savesBefore := sink.saveCount()

	status := model.StatusCompleted
	filter := model.TaskFilter{Status: &status}

	first, err := r.List(ctx, filter)
	require.NoError(t, err)
	second, err := r.List(ctx, filter)
	require.NoError(t, err)

	assert.Equal(t, completed, first)
	assert.Equal(t, first, second)
	assert.Equal(t, savesBefore, sink.saveCount(), "list must not persist")

	all, err := r.List(ctx, model.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// результат - копия, а не окно во внутренний срез
	all[0].Title = "changed"
	got, err := r.Get(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Task 0", got.Title)
}

func TestTaskRepo_ListEmpty(t *testing.T) {
	r := setupRepo(t, &memSink{})

	tasks, err := r.List(context.Background(), model.TaskFilter{})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskRepo_Update(t *testing.T) {
	sink := &memSink{}
	r := setupRepo(t, sink)
	ctx := context.Background()

	created, err := r.Create(ctx, newTask("Buy milk"))
	require.NoError(t, err)

	t.Run("rejected change is discarded", func(t *testing.T) {
		saves := sink.saveCount()
		errRejected := errors.New("rejected")

		_, err := r.Update(ctx, created.ID, func(t *model.Task) error {
			t.Title = "mutated"
			return errRejected
		})
		assert.ErrorIs(t, err, errRejected)

		got, _ := r.Get(ctx, created.ID)
		assert.Equal(t, created, got)
		assert.Equal(t, saves, sink.saveCount())
	})

	t.Run("accepted change is persisted", func(t *testing.T) {
		saves := sink.saveCount()

		updated, err := r.Update(ctx, created.ID, func(t *model.Task) error {
			t.Status = model.StatusCompleted
			t.ID = "hijacked"
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID, "id is immutable")
		assert.Equal(t, model.StatusCompleted, updated.Status)
		assert.Equal(t, saves+1, sink.saveCount())
		assert.Equal(t, []model.Task{updated}, sink.stored)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := r.Update(ctx, "404", func(*model.Task) error { return nil })
		assert.ErrorIs(t, err, ErrorNotFound)
	})
}

func TestTaskRepo_Delete(t *testing.T) {
	sink := &memSink{}
	r := setupRepo(t, sink)
	ctx := context.Background()

	first, _ := r.Create(ctx, newTask("First"))
	second, _ := r.Create(ctx, newTask("Second"))

	require.NoError(t, r.Delete(ctx, first.ID))

	_, err := r.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrorNotFound)

	got, err := r.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got, "surviving ids are not renumbered")

	saves := sink.saveCount()
	err = r.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, ErrorNotFound)
	assert.Equal(t, saves, sink.saveCount(), "no-op delete must not persist")

	all, _ := r.List(ctx, model.TaskFilter{})
	assert.Len(t, all, 1)
}

func TestTaskRepo_IDsNotReused(t *testing.T) {
	r := setupRepo(t, &memSink{})
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		created, err := r.Create(ctx, newTask(fmt.Sprintf("Task %d", i)))
		require.NoError(t, err)
		require.False(t, seen[created.ID], "id %s reused", created.ID)
		seen[created.ID] = true

		if i%3 == 0 {
			require.NoError(t, r.Delete(ctx, created.ID))
		}
	}
}

func TestTaskRepo_PersistenceError(t *testing.T) {
	sink := &memSink{}
	r := setupRepo(t, sink)
	ctx := context.Background()

	diskFull := errors.New("disk full")
	sink.saveErr = diskFull

	created, err := r.Create(ctx, newTask("Buy milk"))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, diskFull)
	assert.NotErrorIs(t, err, ErrorNotFound)

	// без отката: запись осталась в памяти
	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	sink.saveErr = nil
	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, sink.stored)
}

func TestTaskRepo_SaveTimeout(t *testing.T) {
	sink := &memSink{delay: time.Second}
	r := NewTaskRepo(sink, &SequentialGenerator{}, 20*time.Millisecond, zap.NewNop())

	_, err := r.Create(context.Background(), newTask("Slow"))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTaskRepo_FlushIgnoresCallerCancel(t *testing.T) {
	sink := &memSink{}
	r := setupRepo(t, sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Create(ctx, newTask("Buy milk"))
	require.NoError(t, err)
	assert.Len(t, sink.stored, 1)
}

func TestTaskRepo_Load(t *testing.T) {
	t.Run("seeds sequential ids", func(t *testing.T) {
		sink := &memSink{stored: []model.Task{
			{ID: "7", Title: "Old", Status: model.StatusPending, DueDate: "2024-01-01"},
			{ID: "3", Title: "Older", Status: model.StatusPending, DueDate: "2024-01-01"},
		}}
		r := setupRepo(t, sink)

		created, err := r.Create(context.Background(), newTask("New"))
		require.NoError(t, err)
		assert.Equal(t, "8", created.ID)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		sink := &memSink{stored: []model.Task{
			{ID: "1", Title: "One", Status: model.StatusPending, DueDate: "2024-01-01"},
			{ID: "1", Title: "Two", Status: model.StatusPending, DueDate: "2024-01-01"},
		}}
		r := NewTaskRepo(sink, &SequentialGenerator{}, time.Second, zap.NewNop())
		assert.Error(t, r.Load(context.Background()))
	})
}

// stuckGenerator always returns the same id.
type stuckGenerator struct{}

func (stuckGenerator) Next() string      { return "same" }
func (stuckGenerator) Seed([]model.Task) {}

func TestTaskRepo_IDCollision(t *testing.T) {
	sink := &memSink{}
	r := NewTaskRepo(sink, stuckGenerator{}, time.Second, zap.NewNop())
	ctx := context.Background()

	_, err := r.Create(ctx, newTask("First"))
	require.NoError(t, err)

	_, err = r.Create(ctx, newTask("Second"))
	assert.Error(t, err)

	all, _ := r.List(ctx, model.TaskFilter{})
	assert.Len(t, all, 1)
	assert.Equal(t, 1, sink.saveCount())
}

func TestTaskRepo_ConcurrentCreate(t *testing.T) {
	sink := &memSink{}
	r := NewTaskRepo(sink, UUIDGenerator{}, time.Second, zap.NewNop())
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	ids := make([]string, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			created, err := r.Create(ctx, newTask(fmt.Sprintf("Concurrent %d", idx)))
			ids[idx], errs[idx] = created.ID, err
		}(i)
	}
	wg.Wait()

	unique := map[string]struct{}{}
	for i, err := range errs {
		require.NoError(t, err, "create %d", i)
		unique[ids[i]] = struct{}{}
	}
	assert.Len(t, unique, goroutines)
	assert.Equal(t, goroutines, sink.saveCount())
	assert.Len(t, sink.stored, goroutines, "last flush holds every task")
}

func TestTaskRepo_GetStats(t *testing.T) {
	r := setupRepo(t, &memSink{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, newTask(fmt.Sprintf("Task %d", i)))
		require.NoError(t, err)
	}
	done := newTask("Done")
	done.Status = model.StatusCompleted
	_, err := r.Create(ctx, done)
	require.NoError(t, err)

	stats, err := r.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalTasks)
	assert.Equal(t, 3, stats.ByStatus[model.StatusPending])
	assert.Equal(t, 1, stats.ByStatus[model.StatusCompleted])
}
