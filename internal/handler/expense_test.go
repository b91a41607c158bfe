package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/palpay/internal/domain"
)

func TestExpenseHandler_Create(t *testing.T) {
	caller := uuid.New()
	activityID := uuid.New()
	otherPayer := uuid.New()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
		wantPayer  uuid.UUID
		wantAmount string
	}{
		{
			name:       "amount as number defaults payer to caller",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":12.5}`, activityID),
			wantStatus: http.StatusCreated,
			wantPayer:  caller,
			wantAmount: "12.50",
		},
		{
			name:       "amount as string with explicit payer",
			body:       fmt.Sprintf(`{"activity_id":%q,"payer_id":%q,"amount":"40"}`, activityID, otherPayer),
			wantStatus: http.StatusCreated,
			wantPayer:  otherPayer,
			wantAmount: "40.00",
		},
		{
			name:       "missing amount",
			body:       fmt.Sprintf(`{"activity_id":%q}`, activityID),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "sub-cent amount",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":"0.001"}`, activityID),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "amount beyond storage capacity",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":"1e20"}`, activityID),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "largest storable amount",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":"999999999999.99"}`, activityID),
			wantStatus: http.StatusCreated,
			wantPayer:  caller,
			wantAmount: "999999999999.99",
		},
		{
			name:       "negative amount",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":-3}`, activityID),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "malformed json",
			body:       `{"activity_id":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "payer outside activity",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":1}`, activityID),
			svcErr:     fmt.Errorf("CreateExpense: %w", domain.ErrNotParticipant),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "NOT_A_PARTICIPANT",
		},
		{
			name:       "unknown activity",
			body:       fmt.Sprintf(`{"activity_id":%q,"amount":1}`, activityID),
			svcErr:     fmt.Errorf("CreateExpense: %w", domain.ErrActivityNotFound),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "ACTIVITY_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeLedger{err: tc.svcErr}
			h := NewExpenseHandler(svc)
			rec := httptest.NewRecorder()

			h.Create(rec, request(http.MethodPost, "/api/v1/expenses", tc.body, caller))

			assert.Equal(t, tc.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tc.wantCode, env.Error.Code)
				return
			}

			assert.True(t, env.Success)
			assert.Equal(t, tc.wantPayer, svc.expenseReq.PayerID)
			var dto expenseDTO
			require.NoError(t, json.Unmarshal(env.Data, &dto))
			assert.Equal(t, tc.wantAmount, dto.Amount)
			assert.Equal(t, "/api/v1/expenses/"+dto.ID.String(), rec.Header().Get("Location"))
		})
	}
}

func TestExpenseHandler_ListFiltersByActivity(t *testing.T) {
	svc := &fakeLedger{}
	h := NewExpenseHandler(svc)
	activityID := uuid.New()

	rec := httptest.NewRecorder()
	h.List(rec, request(http.MethodGet, "/api/v1/expenses?activity_id="+activityID.String(), "", uuid.New()))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listedFor)
	assert.Equal(t, activityID, *svc.listedFor)

	rec = httptest.NewRecorder()
	h.List(rec, request(http.MethodGet, "/api/v1/expenses?activity_id=nope", "", uuid.New()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpenseHandler_Delete(t *testing.T) {
	mux := http.NewServeMux()
	svc := &fakeLedger{}
	mux.HandleFunc("DELETE /api/v1/expenses/{id}", NewExpenseHandler(svc).Delete)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, request(http.MethodDelete, "/api/v1/expenses/"+uuid.NewString(), "", uuid.New()))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	svc.err = domain.ErrNotFound
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, request(http.MethodDelete, "/api/v1/expenses/"+uuid.NewString(), "", uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, request(http.MethodDelete, "/api/v1/expenses/not-a-uuid", "", uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
