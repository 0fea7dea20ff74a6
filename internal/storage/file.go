package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// FileSink keeps the collection as an indented JSON array in a single file.
// Every Save rewrites the file through a temp file and rename, so a crash
// mid-write leaves the previous version in place.
type FileSink struct {
	path   string
	logger *zap.Logger
}

func NewFileSink(path string, logger *zap.Logger) *FileSink {
	return &FileSink{
		path:   path,
		logger: logger,
	}
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) { // Файла еще нет - начинаем с пустой коллекции
			s.logger.Info("backing file not found, starting empty", zap.String("path", s.path))
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Task{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var tasks []model.Task
	if err := dec.Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("failed to decode %s: trailing content", s.path)
	}
	if tasks == nil { // literal null
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *FileSink) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	// Некоторые ФС не поддерживают fsync каталога
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}
