// internal/repository/memory/transaction_mem.go
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// TransactionRepository is an in-memory implementation of repository.TransactionRepository.
// It is safe for concurrent use. Data is lost on restart.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
}

// NewTransactionRepository creates an empty in-memory store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]domain.Transaction),
	}
}

// FetchAll returns copies of every stored transaction.
func (r *TransactionRepository) FetchAll(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		result = append(result, t.Clone())
	}
	return result, nil
}

// GetByID returns a copy of the transaction with the given id.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, util.ErrNotFound)
	}
	c := t.Clone()
	return &c, nil
}

// Insert stores a copy of transaction.
func (r *TransactionRepository) Insert(ctx context.Context, transaction *domain.Transaction) error {
	if transaction.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[transaction.ID]; exists {
		return fmt.Errorf("transaction %s already exists", transaction.ID)
	}
	r.transactions[transaction.ID] = transaction.Clone()
	return nil
}

// Update applies patch to the stored transaction.
func (r *TransactionRepository) Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, util.ErrNotFound)
	}
	t = t.Clone()
	t.Apply(patch)
	r.transactions[id] = t

	c := t.Clone()
	return &c, nil
}

// Delete removes the transaction and returns it.
func (r *TransactionRepository) Delete(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, util.ErrNotFound)
	}
	delete(r.transactions, id)
	return &t, nil
}

// Close is a no-op.
func (r *TransactionRepository) Close() error { return nil }

// Ensure TransactionRepository implements the repository interface.
var _ repository.TransactionRepository = (*TransactionRepository)(nil)
