// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/domain"
	"fintrack/internal/events"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// TransactionService defines the interface for transaction-related business logic.
type TransactionService interface {
	ListTransactions(ctx context.Context, criteria domain.Criteria) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, candidate domain.Candidate) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, candidate domain.Candidate) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	Summarize(ctx context.Context, criteria domain.Criteria) (domain.Summary, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	repo      repository.TransactionRepository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	repo repository.TransactionRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) TransactionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &transactionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// ListTransactions returns the transactions matching criteria, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, criteria domain.Criteria) ([]domain.Transaction, error) {
	all, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	filtered := domain.Filter(all, criteria)
	domain.SortNewestFirst(filtered)
	return filtered, nil
}

// GetTransaction retrieves a single transaction.
func (s *transactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	if !validID(id) {
		return nil, &util.NotFoundError{ID: id}
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate("get transaction", id, err)
	}
	return t, nil
}

// CreateTransaction validates candidate and stores it as a new transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, candidate domain.Candidate) (*domain.Transaction, error) {
	patch, err := domain.Validate(candidate, domain.ModeCreate)
	if err != nil {
		return nil, err
	}

	transaction := domain.NewTransaction(s.newID(), patch, s.now())
	if err := s.repo.Insert(ctx, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction created",
		"transaction_id", transaction.ID,
		"transaction_type", transaction.TransactionType,
		"category", transaction.Category)
	s.publish(ctx, events.KindCreated, transaction)
	return transaction, nil
}

// UpdateTransaction applies the supplied fields of candidate to an existing transaction.
// A missing transaction is reported before any validation problem.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, candidate domain.Candidate) (*domain.Transaction, error) {
	if _, err := s.GetTransaction(ctx, id); err != nil {
		return nil, err
	}

	patch, err := domain.Validate(candidate, domain.ModeUpdate)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, translate("update transaction", id, err)
	}

	s.logger.InfoContext(ctx, "Transaction updated", "transaction_id", id)
	s.publish(ctx, events.KindUpdated, updated)
	return updated, nil
}

// DeleteTransaction removes a transaction and returns the removed record.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	if !validID(id) {
		return nil, &util.NotFoundError{ID: id}
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate("delete transaction", id, err)
	}

	s.logger.InfoContext(ctx, "Transaction deleted", "transaction_id", id)
	s.publish(ctx, events.KindDeleted, deleted)
	return deleted, nil
}

// Summarize aggregates the transactions matching criteria.
func (s *transactionService) Summarize(ctx context.Context, criteria domain.Criteria) (domain.Summary, error) {
	all, err := s.repo.FetchAll(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summarize transactions: %w", err)
	}
	return domain.Summarize(domain.Filter(all, criteria)), nil
}

// publish reports a committed change. Failures are logged only: the write already happened.
func (s *transactionService) publish(ctx context.Context, kind events.Kind, t *domain.Transaction) {
	event := events.NewTransactionEvent(kind, t, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			"kind", kind,
			"transaction_id", t.ID,
			"error", err)
	}
}

// validID reports whether id can name a stored transaction at all.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func translate(op, id string, err error) error {
	if util.IsError(err, util.ErrNotFound) {
		return &util.NotFoundError{ID: id}
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}
