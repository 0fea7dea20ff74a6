package storage

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// RetrySink retries failed Saves with exponential backoff. Load is passed
// through untouched: a store that cannot be read at startup stays fatal.
type RetrySink struct {
	next       Sink
	maxRetries uint64
	initial    time.Duration
	logger     *zap.Logger
}

func NewRetrySink(next Sink, maxRetries uint64, logger *zap.Logger) *RetrySink {
	return &RetrySink{
		next:       next,
		maxRetries: maxRetries,
		initial:    50 * time.Millisecond,
		logger:     logger,
	}
}

func (s *RetrySink) Load(ctx context.Context) ([]model.Task, error) {
	return s.next.Load(ctx)
}

func (s *RetrySink) Save(ctx context.Context, tasks []model.Task) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.initial
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = 0 // ограничиваем числом попыток

	b := backoff.WithContext(backoff.WithMaxRetries(exp, s.maxRetries), ctx)

	op := func() error {
		err := s.next.Save(ctx, tasks)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("save failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	}

	return backoff.RetryNotify(op, b, notify)
}
