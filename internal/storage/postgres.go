package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// PostgresSink stores the collection in a Postgres table through a pgx pool.
type PostgresSink struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresSink(pool *pgxpool.Pool, logger *zap.Logger) *PostgresSink {
	return &PostgresSink{
		pool:   pool,
		logger: logger,
	}
}

// Migrate creates the tasks table if it does not exist yet.
func (s *PostgresSink) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, tasksSchema); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}

func (s *PostgresSink) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := s.pool.Query(ctx, selectTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.Category, &t.User); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *PostgresSink) Save(ctx context.Context, tasks []model.Task) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	rows := make([][]any, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, taskRow(i, t))
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"tasks"}, taskColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("failed to copy tasks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
