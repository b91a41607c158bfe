package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/config"
	"github.com/josh-kwaku/palpay/internal/logging"
	"github.com/josh-kwaku/palpay/internal/repository"
	"github.com/josh-kwaku/palpay/internal/service"
	"github.com/josh-kwaku/palpay/internal/service/ledger"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(os.Stdout, "palpay-api", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
		PingAttempts:     cfg.DBPingAttempts,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	db := repository.NewDB(pool)
	users := repository.NewUserRepository(pool)
	audit := repository.NewAuditRepository(pool)
	idempotency := repository.NewIdempotencyRepository(pool)

	ledgerSvc := ledger.NewService(
		db,
		repository.NewActivityRepository(pool),
		repository.NewExpenseRepository(pool),
		repository.NewPaymentRepository(pool),
		users,
		repository.NewBalanceRepository(pool),
		repository.NewSettlementRepository(pool),
		audit,
	)
	userSvc := service.NewUserService(db, users, audit, cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	if err := ledgerSvc.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild ledger: %w", err)
	}

	go purgeIdempotency(ctx, idempotency, cfg.IdempotencyPurgePeriod, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: routes(deps{
			cfg:         cfg,
			db:          db,
			ledger:      ledgerSvc,
			users:       userSvc,
			tokens:      tokens,
			idempotency: idempotency,
		}),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

type idempotencyPurger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

func purgeIdempotency(ctx context.Context, store idempotencyPurger, every time.Duration, logger *slog.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.Purge(ctx, now)
			if err != nil {
				logger.Warn("idempotency purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("purged expired idempotency keys", "count", n)
			}
		}
	}
}
