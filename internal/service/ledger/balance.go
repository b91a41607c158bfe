package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

// ListBalances returns the stored pairwise balances, optionally only those
// involving userID.
func (s *Service) ListBalances(ctx context.Context, userID *uuid.UUID) ([]domain.Balance, error) {
	balances, err := s.balances.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ListBalances: %w", err)
	}
	return balances, nil
}

// ListSettlements returns the stored plan that clears every net position.
func (s *Service) ListSettlements(ctx context.Context) ([]domain.SettlementInstruction, error) {
	instructions, err := s.settlements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListSettlements: %w", err)
	}
	return instructions, nil
}
