package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/service"
	"github.com/josh-kwaku/palpay/internal/service/ledger"
)

type fakeLedger struct {
	err error

	expenseReq  ledger.CreateExpenseRequest
	paymentReq  ledger.CreatePaymentRequest
	activityReq ledger.CreateActivityRequest
	addedUser   uuid.UUID
	listedFor   *uuid.UUID

	balances    []domain.Balance
	settlements []domain.SettlementInstruction
}

func (f *fakeLedger) CreateExpense(_ context.Context, req ledger.CreateExpenseRequest) (*domain.Expense, error) {
	f.expenseReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Expense{ID: uuid.New(), ActivityID: req.ActivityID, PayerID: req.PayerID, Amount: req.Amount, Description: req.Description}, nil
}

func (f *fakeLedger) DeleteExpense(context.Context, uuid.UUID) error { return f.err }

func (f *fakeLedger) GetExpense(_ context.Context, id uuid.UUID) (*domain.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Expense{ID: id}, nil
}

func (f *fakeLedger) ListExpenses(_ context.Context, activityID *uuid.UUID) ([]domain.Expense, error) {
	f.listedFor = activityID
	return []domain.Expense{}, f.err
}

func (f *fakeLedger) CreatePayment(_ context.Context, req ledger.CreatePaymentRequest) (*domain.Payment, error) {
	f.paymentReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Payment{ID: uuid.New(), FromUserID: req.FromUserID, ToUserID: req.ToUserID, Amount: req.Amount}, nil
}

func (f *fakeLedger) DeletePayment(context.Context, uuid.UUID) error { return f.err }

func (f *fakeLedger) GetPayment(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Payment{ID: id}, nil
}

func (f *fakeLedger) ListPayments(_ context.Context, userID *uuid.UUID) ([]domain.Payment, error) {
	f.listedFor = userID
	return []domain.Payment{}, f.err
}

func (f *fakeLedger) CreateActivity(_ context.Context, req ledger.CreateActivityRequest) (*domain.Activity, error) {
	f.activityReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Activity{ID: uuid.New(), Name: req.Name, CreatedBy: req.CreatedBy, Participants: req.Participants}, nil
}

func (f *fakeLedger) AddParticipant(_ context.Context, activityID, userID uuid.UUID) (*domain.Activity, error) {
	f.addedUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Activity{ID: activityID, Participants: []uuid.UUID{userID}}, nil
}

func (f *fakeLedger) GetActivity(_ context.Context, id uuid.UUID) (*domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Activity{ID: id}, nil
}

func (f *fakeLedger) ListActivities(context.Context) ([]domain.Activity, error) {
	return []domain.Activity{}, f.err
}

func (f *fakeLedger) ActivitySettlements(context.Context, uuid.UUID) ([]domain.SettlementInstruction, error) {
	return f.settlements, f.err
}

func (f *fakeLedger) ListBalances(_ context.Context, userID *uuid.UUID) ([]domain.Balance, error) {
	f.listedFor = userID
	return f.balances, f.err
}

func (f *fakeLedger) ListSettlements(context.Context) ([]domain.SettlementInstruction, error) {
	return f.settlements, f.err
}

type fakeUsers struct {
	err     error
	user    *domain.User
	updated struct {
		id   uuid.UUID
		name string
	}
}

func (f *fakeUsers) Register(_ context.Context, req service.RegisterRequest) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
}

func (f *fakeUsers) Authenticate(context.Context, string, string) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeUsers) GetUser(context.Context, uuid.UUID) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeUsers) ListUsers(context.Context) ([]domain.User, error) {
	return []domain.User{}, f.err
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, name string, paymentDetails *string) (*domain.User, error) {
	f.updated.id, f.updated.name = id, name
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: id, Name: name, PaymentDetails: paymentDetails}, nil
}

func (f *fakeUsers) AuditTrail(context.Context, domain.EntityType, uuid.UUID) ([]domain.AuditEvent, error) {
	return []domain.AuditEvent{}, f.err
}

// request builds an authenticated request for userID.
func request(method, target, body string, userID uuid.UUID) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if userID != uuid.Nil {
		req = req.WithContext(auth.ContextWithClaims(req.Context(), &auth.Claims{UserID: userID}))
	}
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string       `json:"code"`
		Details []FieldError `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
