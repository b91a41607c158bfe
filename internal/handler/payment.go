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

type paymentService interface {
	CreatePayment(ctx context.Context, req ledger.CreatePaymentRequest) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID *uuid.UUID) ([]domain.Payment, error)
}

type PaymentHandler struct {
	payments paymentService
}

func NewPaymentHandler(payments paymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentDTO struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Amount     string    `json:"amount"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func toPaymentDTO(p *domain.Payment) paymentDTO {
	return paymentDTO{
		ID:         p.ID,
		FromUserID: p.FromUserID,
		ToUserID:   p.ToUserID,
		Amount:     formatMoney(p.Amount),
		Note:       p.Note,
		CreatedAt:  p.CreatedAt,
	}
}

// createPaymentRequest records a repayment. FromUserID defaults to the
// caller.
type createPaymentRequest struct {
	FromUserID *uuid.UUID       `json:"from_user_id"`
	ToUserID   uuid.UUID        `json:"to_user_id"`
	Amount     *decimal.Decimal `json:"amount"`
	Note       *string          `json:"note"`
}

func (r createPaymentRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ToUserID == uuid.Nil {
		errs = append(errs, FieldError{Field: "to_user_id", Message: "required"})
	}
	errs = append(errs, validateAmount("amount", r.Amount)...)
	return errs
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	from := userID
	if req.FromUserID != nil {
		from = *req.FromUserID
	}

	p, err := h.payments.CreatePayment(r.Context(), ledger.CreatePaymentRequest{
		FromUserID: from,
		ToUserID:   req.ToUserID,
		Amount:     *req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("payment creation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/payments/%s", p.ID))
	RespondSuccess(w, http.StatusCreated, toPaymentDTO(p))
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "user_id")
	if !ok {
		return
	}

	payments, err := h.payments.ListPayments(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list payments", "error", err)
		RespondDomainError(w, err)
		return
	}

	out := make([]paymentDTO, len(payments))
	for i := range payments {
		out[i] = toPaymentDTO(&payments[i])
	}
	RespondSuccess(w, http.StatusOK, out)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.payments.GetPayment(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("payment lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toPaymentDTO(p))
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.payments.DeletePayment(r.Context(), id); err != nil {
		logging.FromContext(r.Context()).Warn("payment deletion failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
