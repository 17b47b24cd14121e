package store

import (
	"context"
	"sync"

	"github.com/smartexpense/expense-validator/internal/models"
)

// Memory is an in-process Store used when no database is configured and
// in tests.
type Memory struct {
	mu   sync.Mutex
	txns []models.Transaction
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save appends the batch.
func (m *Memory) Save(_ context.Context, txns []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txns...)
	return nil
}

// ListAll returns a copy of everything saved so far.
func (m *Memory) ListAll(_ context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, len(m.txns))
	copy(out, m.txns)
	return out, nil
}
