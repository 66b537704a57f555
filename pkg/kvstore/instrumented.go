package kvstore

import (
	"context"
	"time"
)

type operationObserver interface {
	ObserveStoreOperation(operation string, duration time.Duration)
}

// Instrumented decorates a Store with per-operation timing metrics.
type Instrumented struct {
	next     Store
	observer operationObserver
}

// NewInstrumented wraps the store.
func NewInstrumented(next Store, observer operationObserver) *Instrumented {
	return &Instrumented{next: next, observer: observer}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)
	s.observer.ObserveStoreOperation("get", time.Since(start))
	return value, err
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observer.ObserveStoreOperation("set", time.Since(start))
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observer.ObserveStoreOperation("delete", time.Since(start))
	return err
}
