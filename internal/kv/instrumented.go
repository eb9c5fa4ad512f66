package kv

import (
	"context"

	"github.com/claude/liftlog/internal/metrics"
)

// Instrumented counts operations on the wrapped Store by op and result.
type Instrumented struct {
	next    Store
	backend string
	m       *metrics.Manager
}

var _ Store = (*Instrumented)(nil)

func NewInstrumented(next Store, backend string, m *metrics.Manager) *Instrumented {
	return &Instrumented{next: next, backend: backend, m: m}
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, found, err := i.next.Get(ctx, key)
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case !found:
		result = "miss"
	}
	i.observe("get", result)
	return value, found, err
}

func (i *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := i.next.Set(ctx, key, value)
	i.observe("set", resultOf(err))
	return err
}

func (i *Instrumented) Delete(ctx context.Context, key string) error {
	err := i.next.Delete(ctx, key)
	i.observe("delete", resultOf(err))
	return err
}

func (i *Instrumented) observe(op, result string) {
	i.m.CounterStoreOps.WithLabelValues(i.backend, op, result).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
