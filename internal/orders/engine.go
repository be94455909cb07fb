package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Engine owns the stock decrement transaction. Every successful call consumes
// exactly one unit; failed calls leave the counter untouched.
type Engine struct {
	repo    Repository
	tx      txRunner
	retries int
}

// NewEngine builds the decrement engine with a bounded conflict retry budget.
func NewEngine(repo Repository, tx txRunner, cfg config.OrdersConfig) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	retries := cfg.DecrementRetries
	if retries < 0 {
		retries = 0
	}
	return &Engine{repo: repo, tx: tx, retries: retries}, nil
}

// TryDecrementStock claims one unit of the dish's stock. It reports how many
// conflict retries were needed alongside the outcome: nil on success,
// NOT_FOUND when the dish is gone, OUT_OF_STOCK when the counter is already
// zero or a concurrent claimant took the last unit.
func (e *Engine) TryDecrementStock(ctx context.Context, dishID uuid.UUID) (int, error) {
	if dishID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "dish id required")
	}

	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		err := e.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := e.repo.WithTx(tx)

			dish, err := repo.FindDishForUpdate(ctx, dishID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
				}
				return err
			}
			if dish.RemainingStock <= 0 {
				return pkgerrors.New(pkgerrors.CodeOutOfStock, "dish is out of stock")
			}

			affected, err := repo.DecrementStock(ctx, dishID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeOutOfStock, "dish is out of stock")
			}
			return nil
		})

		if err == nil {
			return attempt, nil
		}
		if typed := pkgerrors.As(err); typed != nil {
			return attempt, err
		}
		if !isRetryableConflict(err) {
			return attempt, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return e.retries, pkgerrors.Wrap(pkgerrors.CodeTransaction, lastErr, "stock transaction retries exhausted")
}

// Postgres serialization/deadlock failures and sqlite busy locks are safe to
// retry: the transaction rolled back without consuming stock.
func isRetryableConflict(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}
