package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes the dish reads the order flow needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindDish(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	FindDishForUpdate(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	DecrementStock(ctx context.Context, id uuid.UUID) (int64, error)
}

// StockDecrementer consumes one unit of a dish's stock atomically.
type StockDecrementer interface {
	TryDecrementStock(ctx context.Context, dishID uuid.UUID) (retries int, err error)
}
