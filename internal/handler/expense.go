package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
	"github.com/josh-kwaku/palpay/internal/service/ledger"
)

type expenseService interface {
	CreateExpense(ctx context.Context, req ledger.CreateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	GetExpense(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	ListExpenses(ctx context.Context, activityID *uuid.UUID) ([]domain.Expense, error)
}

type ExpenseHandler struct {
	expenses expenseService
}

func NewExpenseHandler(expenses expenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseDTO struct {
	ID          uuid.UUID `json:"id"`
	ActivityID  uuid.UUID `json:"activity_id"`
	PayerID     uuid.UUID `json:"payer_id"`
	Amount      string    `json:"amount"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExpenseDTO(e *domain.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		ActivityID:  e.ActivityID,
		PayerID:     e.PayerID,
		Amount:      formatMoney(e.Amount),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// createExpenseRequest accepts amount as a JSON number or string. PayerID
// defaults to the caller.
type createExpenseRequest struct {
	ActivityID  uuid.UUID        `json:"activity_id"`
	PayerID     *uuid.UUID       `json:"payer_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

func (r createExpenseRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ActivityID == uuid.Nil {
		errs = append(errs, FieldError{Field: "activity_id", Message: "required"})
	}
	errs = append(errs, validateAmount("amount", r.Amount)...)
	return errs
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	payer := userID
	if req.PayerID != nil {
		payer = *req.PayerID
	}

	e, err := h.expenses.CreateExpense(r.Context(), ledger.CreateExpenseRequest{
		ActivityID:  req.ActivityID,
		PayerID:     payer,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("expense creation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/expenses/%s", e.ID))
	RespondSuccess(w, http.StatusCreated, toExpenseDTO(e))
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	activityID, ok := queryID(w, r, "activity_id")
	if !ok {
		return
	}

	expenses, err := h.expenses.ListExpenses(r.Context(), activityID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list expenses", "error", err)
		RespondDomainError(w, err)
		return
	}

	out := make([]expenseDTO, len(expenses))
	for i := range expenses {
		out[i] = toExpenseDTO(&expenses[i])
	}
	RespondSuccess(w, http.StatusOK, out)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	e, err := h.expenses.GetExpense(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("expense lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toExpenseDTO(e))
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.expenses.DeleteExpense(r.Context(), id); err != nil {
		logging.FromContext(r.Context()).Warn("expense deletion failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
