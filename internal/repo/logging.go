package repo

import (
	"context"
	"log/slog"
	"time"
)

// loggingStore wraps a KeyStore and writes one structured log line per
// operation: op, key, payload size, and duration.
type loggingStore struct {
	inner KeyStore
	log   *slog.Logger
}

// NewLoggingStore returns a KeyStore that logs every call to inner at debug
// level, or at warn level when the call fails.
func NewLoggingStore(inner KeyStore, log *slog.Logger) KeyStore {
	return &loggingStore{inner: inner, log: log}
}

func (s *loggingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	v, found, err := s.inner.Get(ctx, key)
	s.record(ctx, "get", key, len(v), start, err, "found", found)
	return v, found, err
}

func (s *loggingStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	s.record(ctx, "set", key, len(value), start, err)
	return err
}

func (s *loggingStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.record(ctx, "delete", key, 0, start, err)
	return err
}

func (s *loggingStore) record(ctx context.Context, op, key string, size int, start time.Time, err error, extra ...any) {
	attrs := append([]any{
		"op", op,
		"key", key,
		"bytes", size,
		"duration_ms", time.Since(start).Milliseconds(),
	}, extra...)
	if err != nil {
		s.log.WarnContext(ctx, "store", append(attrs, "error", err)...)
		return
	}
	s.log.DebugContext(ctx, "store", attrs...)
}
