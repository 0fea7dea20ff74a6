package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/handler"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/internal/storage"
)

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Подключаем логгер
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Подключаем хранилище
	sink, closeSink, err := storage.Open(ctx, storageOptions(cfg), logger)
	if err != nil {
		return err
	}
	defer closeSink()

	ids, err := repo.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		return err
	}

	taskRepo := repo.NewTaskRepo(sink, ids, cfg.Storage.SaveTimeout.Duration, logger)
	if err := taskRepo.Load(ctx); err != nil { // С неизвестными данными работать нельзя
		return err
	}

	ref, err := repo.LoadReferenceRepo(cfg.UsersFile, cfg.CategoriesFile)
	if err != nil {
		return err
	}

	router := handler.NewRouter(handler.RouterDeps{
		Tasks:     service.NewTaskService(taskRepo),
		Reference: ref,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	})

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { // Запуск сервера и обработка ошибок
		logger.Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("id_scheme", cfg.IDScheme),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped successfully")
	return nil
}
