// internal/api/handler/transaction.go
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/api/types"
	"fintrack/internal/domain"
	"fintrack/internal/export"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// TransactionHandler handles HTTP requests related to transactions.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// maxBodyBytes bounds the size of a write request body.
const maxBodyBytes = 1 << 20

// decodeCandidate reads the request body as a single JSON object. Numbers are kept
// as json.Number so amounts reach validation without float rounding. A missing,
// oversized or non-object body, or one with data after the object, yields a nil
// candidate, which validation rejects.
func decodeCandidate(w http.ResponseWriter, r *http.Request) domain.Candidate {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil
	}
	obj, _ := body.(map[string]any)
	return domain.Candidate(obj)
}

// parseCriteria reads the optional filter parameters from the query string.
func parseCriteria(r *http.Request) (domain.Criteria, error) {
	q := r.URL.Query()
	return domain.ParseCriteria(domain.RawCriteria{
		Category:        q.Get("category"),
		TransactionType: q.Get("transaction_type"),
		StartDate:       q.Get("start_date"),
		EndDate:         q.Get("end_date"),
	})
}

// ListTransactions handles the list request.
// GET /api/v1/transactions?category=&transaction_type=&start_date=&end_date=
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), criteria)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK,
		types.OK(fmt.Sprintf("Retrieved %d transactions", len(transactions)), transactions))
}

// CreateTransaction handles the create request.
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.service.CreateTransaction(r.Context(), decodeCandidate(w, r))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, types.OK("Transaction created successfully", transaction))
}

// GetTransaction handles the get-by-id request.
// GET /api/v1/transactions/{transactionID}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionID")

	transaction, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.OK("Transaction retrieved successfully", transaction))
}

// UpdateTransaction handles the partial update request.
// PUT /api/v1/transactions/{transactionID}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionID")

	transaction, err := h.service.UpdateTransaction(r.Context(), id, decodeCandidate(w, r))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.OK("Transaction updated successfully", transaction))
}

// DeleteTransaction handles the delete request and echoes the removed record.
// DELETE /api/v1/transactions/{transactionID}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionID")

	transaction, err := h.service.DeleteTransaction(r.Context(), id)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK,
		types.OK(fmt.Sprintf("Transaction %s deleted successfully", id), transaction))
}

// GetSummary handles the summary request. The list filters apply here too.
// GET /api/v1/transactions/summary
func (h *TransactionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	summary, err := h.service.Summarize(r.Context(), criteria)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	message := "Financial summary generated successfully"
	if summary.TotalTransactions == 0 {
		message = "No transactions found"
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.OK(message, summary))
}

// ExportTransactions streams the filtered list as a file attachment.
// GET /api/v1/transactions/export?format=csv|xlsx
func (h *TransactionHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	format, ok := export.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		respondWithError(w, r, h.logger,
			util.NewValidationError("Invalid query parameters", "format must be one of: csv, xlsx"))
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), criteria)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	// Render fully before writing headers so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, transactions); err != nil {
		respondWithError(w, r, h.logger, fmt.Errorf("export transactions: %w", err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(time.Now().UTC())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
