// internal/repository/sqlite/transaction_sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

const (
	selectColumns = `id, amount, category, description, transaction_type, date, created_at, tags`
	timeLayout    = time.RFC3339Nano
)

// transactionRow is the SQLite shape of a transaction. SQLite has no native
// decimal, timestamp or array types, so amount, dates and tags are kept as text.
type transactionRow struct {
	ID              string `db:"id"`
	Amount          string `db:"amount"`
	Category        string `db:"category"`
	Description     string `db:"description"`
	TransactionType string `db:"transaction_type"`
	Date            string `db:"date"`
	CreatedAt       string `db:"created_at"`
	Tags            string `db:"tags"`
}

func fromDomain(t *domain.Transaction) (transactionRow, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return transactionRow{}, fmt.Errorf("encode tags: %w", err)
	}
	return transactionRow{
		ID:              t.ID,
		Amount:          t.Amount.String(),
		Category:        t.Category,
		Description:     t.Description,
		TransactionType: string(t.TransactionType),
		Date:            t.Date.UTC().Format(timeLayout),
		CreatedAt:       t.CreatedAt.UTC().Format(timeLayout),
		Tags:            string(encoded),
	}, nil
}

func (r transactionRow) toDomain() (domain.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decode amount of %s: %w", r.ID, err)
	}
	date, err := time.Parse(timeLayout, r.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decode date of %s: %w", r.ID, err)
	}
	createdAt, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decode created_at of %s: %w", r.ID, err)
	}
	tags := []string{}
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
			return domain.Transaction{}, fmt.Errorf("decode tags of %s: %w", r.ID, err)
		}
	}
	return domain.Transaction{
		ID:              r.ID,
		Amount:          amount,
		Category:        r.Category,
		Description:     r.Description,
		TransactionType: domain.TransactionType(r.TransactionType),
		Date:            date.UTC(),
		CreatedAt:       createdAt.UTC(),
		Tags:            tags,
	}, nil
}

// TransactionRepository implements repository.TransactionRepository on SQLite.
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
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+selectColumns+` FROM transactions`); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// GetByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return getByID(ctx, r.db, id)
}

// Insert stores a new transaction record.
func (r *TransactionRepository) Insert(ctx context.Context, transaction *domain.Transaction) error {
	row, err := fromDomain(transaction)
	if err != nil {
		return err
	}

	query := `INSERT INTO transactions (id, amount, category, description, transaction_type, date, created_at, tags)
              VALUES (:id, :amount, :category, :description, :transaction_type, :date, :created_at, :tags)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, row); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Update applies the patch inside a transaction and writes the mutable columns back.
func (r *TransactionRepository) Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var updated *domain.Transaction
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := getByID(ctx, tx, id)
		if err != nil {
			return err
		}
		current.Apply(patch)

		row, err := fromDomain(current)
		if err != nil {
			return err
		}
		query := `UPDATE transactions
                  SET amount = :amount, category = :category, description = :description,
                      transaction_type = :transaction_type, date = :date, tags = :tags
                  WHERE id = :id`
		if _, err := sqlx.NamedExecContext(ctx, tx, query, row); err != nil {
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
	var deleted *domain.Transaction
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := getByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete transaction %s: %w", id, err)
		}
		deleted = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Close closes the database handle.
func (r *TransactionRepository) Close() error {
	return r.db.Close()
}

func getByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Transaction, error) {
	var row transactionRow
	if err := q.GetContext(ctx, &row, `SELECT `+selectColumns+` FROM transactions WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	t, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
