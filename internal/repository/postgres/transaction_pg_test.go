// internal/repository/postgres/transaction_pg_test.go
package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

func TestTransactionRow_ToDomain(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	row := transactionRow{
		ID:              "id-1",
		Amount:          decimal.RequireFromString("12.3400"),
		Category:        "food",
		TransactionType: "expense",
		Date:            time.Date(2024, 1, 1, 7, 0, 0, 0, loc),
		CreatedAt:       time.Date(2024, 1, 1, 8, 0, 0, 0, loc),
	}

	tx := row.toDomain()
	assert.Equal(t, domain.TransactionTypeExpense, tx.TransactionType)
	assert.Equal(t, time.UTC, tx.Date.Location())
	assert.Equal(t, 12, tx.Date.Hour())
	assert.NotNil(t, tx.Tags)
	assert.Empty(t, tx.Tags)
}

func TestTagArray(t *testing.T) {
	assert.Equal(t, pq.StringArray{}, tagArray(nil))
	assert.Equal(t, pq.StringArray{"a", "b"}, tagArray([]string{"a", "b"}))
}

// setupRepository connects to the database described by the DB_* variables.
// The test is skipped when no server is reachable.
func setupRepository(t *testing.T) *TransactionRepository {
	t.Helper()

	port, _ := strconv.Atoi(envOr("DB_PORT", "5432"))
	cfg := db.Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     port,
		User:     envOr("DB_USER", "user"),
		Password: envOr("DB_PASSWORD", "password"),
		DBName:   envOr("DB_NAME", "financedb_test"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}
	require.NoError(t, db.RunMigrations(db.DialectPostgres, cfg.DSN()))

	_, err = database.Exec("TRUNCATE TABLE transactions")
	require.NoError(t, err, "Failed to truncate transactions")

	repo := NewTransactionRepository(database)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestTransactionRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	date := time.Date(2024, 4, 2, 15, 4, 5, 0, time.UTC)
	tx := &domain.Transaction{
		ID:              uuid.NewString(),
		Amount:          decimal.RequireFromString("-87.125"),
		Category:        "utilities",
		Description:     "Power bill",
		TransactionType: domain.TransactionTypeExpense,
		Date:            date,
		CreatedAt:       date,
		Tags:            []string{"monthly", "home"},
	}
	require.NoError(t, repo.Insert(ctx, tx))

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(got.Amount))
	assert.Equal(t, tx.Tags, got.Tags)
	assert.True(t, date.Equal(got.Date))

	description := "Power and water"
	updated, err := repo.Update(ctx, tx.ID, domain.TransactionPatch{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.Equal(t, "utilities", updated.Category)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, description, all[0].Description)

	deleted, err := repo.Delete(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, description, deleted.Description)

	_, err = repo.GetByID(ctx, tx.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = repo.Update(ctx, tx.ID, domain.TransactionPatch{})
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = repo.Delete(ctx, tx.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestTransactionRepositoryIntegration_TimestampsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	amount := decimal.NewFromInt(15)
	category := "misc"
	typ := domain.TransactionTypeTransfer
	now := time.Date(2024, 8, 9, 10, 11, 12, 987654321, time.UTC)
	tx := domain.NewTransaction(uuid.NewString(), domain.TransactionPatch{
		Amount:          &amount,
		Category:        &category,
		TransactionType: &typ,
	}, now)
	require.NoError(t, repo.Insert(ctx, tx))

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, tx.CreatedAt.Equal(got.CreatedAt), "inserted %v, read %v", tx.CreatedAt, got.CreatedAt)
	assert.True(t, tx.Date.Equal(got.Date), "inserted %v, read %v", tx.Date, got.Date)
}
