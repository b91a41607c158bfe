package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
)

type balanceService interface {
	ListBalances(ctx context.Context, userID *uuid.UUID) ([]domain.Balance, error)
	ListSettlements(ctx context.Context) ([]domain.SettlementInstruction, error)
}

type BalanceHandler struct {
	ledger balanceService
}

func NewBalanceHandler(ledger balanceService) *BalanceHandler {
	return &BalanceHandler{ledger: ledger}
}

type balanceDTO struct {
	DebtorID   uuid.UUID `json:"debtor_id"`
	CreditorID uuid.UUID `json:"creditor_id"`
	Amount     string    `json:"amount"`
}

type settlementDTO struct {
	From   uuid.UUID `json:"from"`
	To     uuid.UUID `json:"to"`
	Amount string    `json:"amount"`
}

func toSettlementDTOs(in []domain.SettlementInstruction) []settlementDTO {
	out := make([]settlementDTO, len(in))
	for i, s := range in {
		out[i] = settlementDTO{From: s.DebtorID, To: s.CreditorID, Amount: formatMoney(s.Amount)}
	}
	return out
}

func (h *BalanceHandler) Balances(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "user_id")
	if !ok {
		return
	}

	balances, err := h.ledger.ListBalances(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list balances", "error", err)
		RespondDomainError(w, err)
		return
	}

	out := make([]balanceDTO, len(balances))
	for i, b := range balances {
		out[i] = balanceDTO{DebtorID: b.DebtorID, CreditorID: b.CreditorID, Amount: formatMoney(b.Amount)}
	}
	RespondSuccess(w, http.StatusOK, out)
}

func (h *BalanceHandler) Settlements(w http.ResponseWriter, r *http.Request) {
	instructions, err := h.ledger.ListSettlements(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list settlements", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toSettlementDTOs(instructions))
}
