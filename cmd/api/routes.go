package main

import (
	"net/http"

	"github.com/josh-kwaku/palpay/api"
	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/config"
	"github.com/josh-kwaku/palpay/internal/handler"
	"github.com/josh-kwaku/palpay/internal/middleware"
	"github.com/josh-kwaku/palpay/internal/repository"
	"github.com/josh-kwaku/palpay/internal/service"
	"github.com/josh-kwaku/palpay/internal/service/ledger"
)

type deps struct {
	cfg         *config.Config
	db          *repository.DB
	ledger      *ledger.Service
	users       *service.UserService
	tokens      *auth.TokenIssuer
	idempotency *repository.IdempotencyRepository
}

func routes(d deps) http.Handler {
	health := handler.NewHealthHandler(version, handler.Probe{Name: "database", Check: d.db})
	authH := handler.NewAuthHandler(d.users, d.tokens)
	userH := handler.NewUserHandler(d.users)
	activityH := handler.NewActivityHandler(d.ledger)
	expenseH := handler.NewExpenseHandler(d.ledger)
	paymentH := handler.NewPaymentHandler(d.ledger)
	balanceH := handler.NewBalanceHandler(d.ledger)
	auditH := handler.NewAuditHandler(d.users)

	authed := middleware.Auth(d.tokens)
	idem := middleware.Idempotency(d.idempotency)
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }
	protectIdem := func(h http.HandlerFunc) http.Handler { return authed(idem(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(api.OpenAPISpec))

	mux.HandleFunc("POST /api/v1/auth/login", authH.Login)
	mux.HandleFunc("POST /api/v1/users", userH.Register)

	mux.Handle("GET /api/v1/users", protect(userH.List))
	mux.Handle("GET /api/v1/users/{id}", protect(userH.GetByID))
	mux.Handle("PATCH /api/v1/users/{id}", protect(userH.UpdateProfile))

	mux.Handle("POST /api/v1/activities", protect(activityH.Create))
	mux.Handle("GET /api/v1/activities", protect(activityH.List))
	mux.Handle("GET /api/v1/activities/{id}", protect(activityH.Get))
	mux.Handle("POST /api/v1/activities/{id}/participants", protect(activityH.AddParticipant))
	mux.Handle("GET /api/v1/activities/{id}/settlements", protect(activityH.Settlements))

	mux.Handle("POST /api/v1/expenses", protectIdem(expenseH.Create))
	mux.Handle("GET /api/v1/expenses", protect(expenseH.List))
	mux.Handle("GET /api/v1/expenses/{id}", protect(expenseH.Get))
	mux.Handle("DELETE /api/v1/expenses/{id}", protect(expenseH.Delete))

	mux.Handle("POST /api/v1/payments", protectIdem(paymentH.Create))
	mux.Handle("GET /api/v1/payments", protect(paymentH.List))
	mux.Handle("GET /api/v1/payments/{id}", protect(paymentH.Get))
	mux.Handle("DELETE /api/v1/payments/{id}", protect(paymentH.Delete))

	mux.Handle("GET /api/v1/balances", protect(balanceH.Balances))
	mux.Handle("GET /api/v1/settlements", protect(balanceH.Settlements))
	mux.Handle("GET /api/v1/audit-events", protect(auditH.List))

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.Tracing,
		middleware.Logging,
		middleware.CORS(d.cfg.CORSAllowedOrigins),
	)
}
