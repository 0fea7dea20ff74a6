package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// SQLiteSink stores the collection in an embedded SQLite database. Save
// replaces all rows in one transaction, so readers never see a partial
// collection.
type SQLiteSink struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteSink(ctx context.Context, path string, logger *zap.Logger) (*SQLiteSink, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // один писатель

	if _, err := db.ExecContext(ctx, tasksSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tasks table: %w", err)
	}

	return &SQLiteSink{db: db, logger: logger}, nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectTasks)
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

func (s *SQLiteSink) Save(ctx context.Context, tasks []model.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op после Commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(taskColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO tasks (%s) VALUES (%s)", strings.Join(taskColumns, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, taskRow(i, t)...); err != nil {
			return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
