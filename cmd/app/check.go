package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/storage"
)

// runCheck загружает хранилище так же, как при старте сервера, и печатает статистику.
func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sink, closeSink, err := storage.Open(ctx, storageOptions(cfg), zap.NewNop())
	if err != nil {
		return err
	}
	defer closeSink()

	ids, err := repo.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		return err
	}
	taskRepo := repo.NewTaskRepo(sink, ids, cfg.Storage.SaveTimeout.Duration, zap.NewNop())
	if err := taskRepo.Load(ctx); err != nil {
		return err
	}

	stats, err := taskRepo.GetStats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "storage: %s\n", cfg.Storage.Driver)
	fmt.Fprintf(out, "tasks: %d\n", stats.TotalTasks)
	for _, status := range []string{model.StatusPending, model.StatusCompleted} {
		fmt.Fprintf(out, "  %s: %d\n", status, stats.ByStatus[status])
	}
	return nil
}
