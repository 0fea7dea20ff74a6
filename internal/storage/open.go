package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver      string
	DataFile    string
	SQLitePath  string
	DatabaseURL string
	SaveRetries uint64
}

// Open builds the sink selected by opts.Driver. The returned close func
// releases whatever connection the sink holds and is never nil.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Sink, func(), error) {
	var (
		sink    Sink
		closeFn = func() {}
	)

	switch opts.Driver {
	case DriverFile, "":
		sink = NewFileSink(opts.DataFile, logger)

	case DriverSQLite:
		s, err := NewSQLiteSink(ctx, opts.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		sink = s
		closeFn = func() { s.Close() }

	case DriverPostgres:
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		s := NewPostgresSink(pool, logger)
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		sink = s
		closeFn = pool.Close

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}

	if opts.SaveRetries > 0 {
		sink = NewRetrySink(sink, opts.SaveRetries, logger)
	}
	return sink, closeFn, nil
}
