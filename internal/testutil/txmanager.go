package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/txmanager"
)

// Уровни изоляции, которые запоминает SerialTxManager
const (
	ReadCommitted = "read committed"
	Serializable  = "serializable"
	ReadOnly      = "read only"
)

// SerialTxManager выполняет транзакции строго по одной.
// FailSerialization первых транзакций завершаются txmanager.ErrSerialization
type SerialTxManager struct {
	mu                sync.Mutex
	FailSerialization int
	Calls             int
	Isolations        []string
}

func (m *SerialTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, ReadCommitted, fn)
}

func (m *SerialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, Serializable, fn)
}

func (m *SerialTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, ReadOnly, fn)
}

func (m *SerialTxManager) run(ctx context.Context, isolation string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Isolations = append(m.Isolations, isolation)
	if m.FailSerialization > 0 {
		m.FailSerialization--
		return fmt.Errorf("%w: injected", txmanager.ErrSerialization)
	}
	return fn(ctx)
}
