package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindDish(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dish).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// FindDishForUpdate locks the dish row for the rest of the transaction.
// sqlite has no FOR UPDATE; the guarded DecrementStock keeps it correct there.
func (r *repository) FindDishForUpdate(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dish models.Dish
	if err := q.Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// DecrementStock consumes one unit only while stock remains, reporting the
// number of rows touched. Zero rows on a live dish means a lost race, never
// an underflow.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("id = ? AND remaining_stock > 0", id).
		UpdateColumn("remaining_stock", gorm.Expr("remaining_stock - 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
