package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/storage"
)

const maxIDAttempts = 16

// TaskRepo - единственный владелец коллекции задач. Один мьютекс охраняет
// и сам срез, и его сброс в хранилище, поэтому мутации строго последовательны.
type TaskRepo struct {
	mu          sync.Mutex
	tasks       []model.Task
	sink        storage.Sink
	ids         IDGenerator
	saveTimeout time.Duration
	logger      *zap.Logger
}

func NewTaskRepo(sink storage.Sink, ids IDGenerator, saveTimeout time.Duration, logger *zap.Logger) *TaskRepo { // Конструктор
	return &TaskRepo{
		tasks:       []model.Task{},
		sink:        sink,
		ids:         ids,
		saveTimeout: saveTimeout,
		logger:      logger,
	}
}

// Load replaces the in-memory collection with the sink's contents. A store
// that cannot be decoded, or holds duplicate ids, is an error: the caller must
// not serve requests on top of unknown data.
func (r *TaskRepo) Load(ctx context.Context) error {
	tasks, err := r.sink.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("failed to load tasks: duplicate id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = tasks
	r.ids.Seed(tasks)
	r.logger.Info("tasks loaded", zap.Int("count", len(tasks)))
	return nil
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.newID()
	if err != nil {
		return model.Task{}, err
	}
	t.ID = id

	r.tasks = append(r.tasks, t)
	return t, r.flush(ctx)
}

func (r *TaskRepo) Get(ctx context.Context, id string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}
	return r.tasks[i], nil
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, id string, fn func(*model.Task) error) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}

	updated := r.tasks[i]
	if err := fn(&updated); err != nil { // Изменения отбрасываются
		return model.Task{}, err
	}
	updated.ID = r.tasks[i].ID

	r.tasks[i] = updated
	return updated, r.flush(ctx)
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	r.tasks = slices.Delete(r.tasks, i, i+1)
	return r.flush(ctx)
}

func (r *TaskRepo) GetStats(ctx context.Context) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		TotalTasks: len(r.tasks),
		ByStatus: map[string]int{
			model.StatusPending:   0,
			model.StatusCompleted: 0,
		},
	}
	for _, t := range r.tasks {
		stats.ByStatus[t.Status]++
	}
	return stats, nil
}

func (r *TaskRepo) indexOf(id string) int {
	return slices.IndexFunc(r.tasks, func(t model.Task) bool { return t.ID == id })
}

func (r *TaskRepo) newID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := r.ids.Next()
		if r.indexOf(id) < 0 {
			return id, nil
		}
		r.logger.Warn("generated id collides, retrying", zap.String("id", id))
	}
	return "", fmt.Errorf("failed to allocate a unique id after %d attempts", maxIDAttempts)
}

// flush пишет всю коллекцию. Вызывается под r.mu. Изменение в памяти при
// ошибке не откатывается: следующий успешный Save перезапишет хранилище целиком.
func (r *TaskRepo) flush(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx) // отключившийся клиент не должен обрывать запись
	if r.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.saveTimeout)
		defer cancel()
	}

	if err := r.sink.Save(ctx, r.tasks); err != nil {
		r.logger.Error("failed to persist tasks", zap.Int("count", len(r.tasks)), zap.Error(err))
		return &PersistenceError{Cause: err}
	}
	return nil
}
