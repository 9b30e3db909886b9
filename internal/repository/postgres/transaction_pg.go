// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

const selectColumns = `id, amount, category, description, transaction_type, date, created_at, tags`

// transactionRow is the PostgreSQL shape of a transaction; tags live in a TEXT[] column.
type transactionRow struct {
	ID              string          `db:"id"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionType string          `db:"transaction_type"`
	Date            time.Time       `db:"date"`
	CreatedAt       time.Time       `db:"created_at"`
	Tags            pq.StringArray  `db:"tags"`
}

func (r transactionRow) toDomain() domain.Transaction {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return domain.Transaction{
		ID:              r.ID,
		Amount:          r.Amount,
		Category:        r.Category,
		Description:     r.Description,
		TransactionType: domain.TransactionType(r.TransactionType),
		Date:            r.Date.UTC(),
		CreatedAt:       r.CreatedAt.UTC(),
		Tags:            tags,
	}
}

// tagArray keeps the column NOT NULL: a nil slice would be sent as NULL.
func tagArray(tags []string) pq.StringArray {
	if tags == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(tags)
}

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// FetchAll retrieves every stored transaction.
func (r *TransactionRepository) FetchAll(ctx context.Context) ([]domain.Transaction, error) {
	rows := []transactionRow{}
	query := `SELECT ` + selectColumns + ` FROM transactions`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	transactions := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = row.toDomain()
	}
	return transactions, nil
}

// GetByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return getByID(ctx, r.db, id, false)
}

// Insert stores a new transaction record.
func (r *TransactionRepository) Insert(ctx context.Context, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, amount, category, description, transaction_type, date, created_at, tags)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.Amount,
		transaction.Category,
		transaction.Description,
		string(transaction.TransactionType),
		transaction.Date,
		transaction.CreatedAt,
		tagArray(transaction.Tags),
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Update locks the row, applies the patch and writes every mutable column back.
func (r *TransactionRepository) Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var updated *domain.Transaction
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := getByID(ctx, tx, id, true)
		if err != nil {
			return err
		}
		current.Apply(patch)

		query := `UPDATE transactions
                  SET amount = $1, category = $2, description = $3, transaction_type = $4, date = $5, tags = $6
                  WHERE id = $7`
		if _, err := tx.ExecContext(ctx, query,
			current.Amount,
			current.Category,
			current.Description,
			string(current.TransactionType),
			current.Date,
			tagArray(current.Tags),
			id,
		); err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", id, err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a transaction and returns the removed record.
func (r *TransactionRepository) Delete(ctx context.Context, id string) (*domain.Transaction, error) {
	var row transactionRow
	query := `DELETE FROM transactions WHERE id = $1 RETURNING ` + selectColumns
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	t := row.toDomain()
	return &t, nil
}

// Close closes the connection pool.
func (r *TransactionRepository) Close() error {
	return r.db.Close()
}

func getByID(ctx context.Context, q repository.DBExecutor, id string, forUpdate bool) (*domain.Transaction, error) {
	var row transactionRow
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	if err := q.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	t := row.toDomain()
	return &t, nil
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
