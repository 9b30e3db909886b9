// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"fintrack/internal/domain"
)

// TransactionRepository defines the storage operations the service needs.
// Lookups of an unknown id return an error wrapping util.ErrNotFound.
type TransactionRepository interface {
	// FetchAll returns every stored transaction, in no particular order.
	FetchAll(ctx context.Context) ([]domain.Transaction, error)
	// GetByID retrieves a single transaction.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// Insert stores a new transaction. The ID is assigned by the caller.
	Insert(ctx context.Context, transaction *domain.Transaction) error
	// Update applies the supplied patch fields and returns the stored result.
	Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error)
	// Delete removes a transaction and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*domain.Transaction, error)
	// Close releases the underlying resources.
	Close() error
}
