// Package store persists parsed transactions. The engine hands a batch
// to Save all-or-nothing; a failed parse is never partially persisted.
package store

import (
	"context"

	"github.com/smartexpense/expense-validator/internal/models"
)

// Store is the durable-store collaborator contract.
type Store interface {
	// Save persists a parsed batch atomically.
	Save(ctx context.Context, txns []models.Transaction) error
	// ListAll returns previously persisted transactions; read order is
	// unspecified.
	ListAll(ctx context.Context) ([]models.Transaction, error)
}
