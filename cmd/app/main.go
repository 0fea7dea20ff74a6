package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/config"
	"github.com/BuzzLyutic/task-tracker/internal/storage"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	port       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tasks",
		Short:         "Task tracker HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("TASKS_CONFIG"), "path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.port, "port", "", "HTTP port (overrides config and PORT)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Load the configured backing store and report how many tasks it holds",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCheck(cmd, opts)
			},
		},
	)
	return root
}

// Загрузка конфигурации: файл, окружение, затем флаги
func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.port != "" {
		cfg.Port = opts.port
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func storageOptions(cfg config.Config) storage.Options {
	return storage.Options{
		Driver:      cfg.Storage.Driver,
		DataFile:    cfg.Storage.DataFile,
		SQLitePath:  cfg.Storage.SQLitePath,
		DatabaseURL: cfg.Storage.DatabaseURL,
		SaveRetries: cfg.Storage.SaveRetries,
	}
}
