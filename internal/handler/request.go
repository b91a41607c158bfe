package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/palpay/internal/domain"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryID reads an optional uuid query parameter. A present but malformed
// value is answered with a validation error.
func queryID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: name, Message: "must be a UUID"}})
		return nil, false
	}
	return &id, true
}

// validateAmount checks a money field the way the ledger stores it.
func validateAmount(field string, amount *decimal.Decimal) []FieldError {
	switch {
	case amount == nil:
		return []FieldError{{Field: field, Message: "required"}}
	case !domain.ValidAmount(*amount):
		return []FieldError{{Field: field, Message: "must be between 0 and 999999999999.99 with at most two decimal places"}}
	}
	return nil
}

// formatMoney renders an amount the way every response carries money.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
