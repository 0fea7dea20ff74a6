package repo

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

const (
	SchemeUUID       = "uuid"
	SchemeSequential = "sequential"
)

// IDGenerator выдает идентификаторы новых задач. Одна схема на деплой.
type IDGenerator interface {
	Next() string
	// Seed is called with the loaded collection before the first Next.
	Seed(existing []model.Task)
}

func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case SchemeUUID, "":
		return UUIDGenerator{}, nil
	case SchemeSequential:
		return &SequentialGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}

type UUIDGenerator struct{}

func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

func (UUIDGenerator) Seed([]model.Task) {}

// SequentialGenerator hands out 1, 2, 3, ... and never goes back, so ids
// freed by a delete are not reused while the process lives.
type SequentialGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *SequentialGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	return strconv.FormatInt(g.last, 10)
}

func (g *SequentialGenerator) Seed(existing []model.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range existing {
		n, err := strconv.ParseInt(t.ID, 10, 64)
		if err == nil && n > g.last {
			g.last = n
		}
	}
}
