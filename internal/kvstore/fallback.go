package kvstore

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/preston-bernstein/sports-page-service/internal/logging"
)

// FallbackStore serves from a primary store until it first fails, then switches to an in-memory
// store for the rest of the process lifetime. Values written before the switch are not copied.
// A cancelled or expired caller context is returned as-is and does not count as a failure.
type FallbackStore struct {
	primary  Store
	memory   *MemoryStore
	degraded atomic.Bool
	logger   *slog.Logger
}

// NewFallbackStore wraps primary. A nil primary starts degraded.
func NewFallbackStore(primary Store, logger *slog.Logger) *FallbackStore {
	f := &FallbackStore{primary: primary, memory: NewMemoryStore(), logger: logger}
	if primary == nil {
		f.degraded.Store(true)
	}
	return f
}

// Degraded reports whether the store has switched to memory.
func (f *FallbackStore) Degraded() bool {
	return f.degraded.Load()
}

func (f *FallbackStore) Get(ctx context.Context, key string) (string, error) {
	if !f.degraded.Load() {
		v, err := f.primary.Get(ctx, key)
		if err == nil || errors.Is(err, ErrNotFound) || callerDone(err) {
			return v, err
		}
		f.degrade(err)
	}
	return f.memory.Get(ctx, key)
}

func (f *FallbackStore) Set(ctx context.Context, key, value string) error {
	if !f.degraded.Load() {
		err := f.primary.Set(ctx, key, value)
		if err == nil || callerDone(err) {
			return err
		}
		f.degrade(err)
	}
	return f.memory.Set(ctx, key, value)
}

func (f *FallbackStore) degrade(err error) {
	if f.degraded.CompareAndSwap(false, true) {
		logging.Warn(f.logger, "kv store unavailable, using memory", "error", err)
	}
}

func callerDone(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
