package dishes

import (
	"context"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes dish persistence for the menu and admin flows.
type Repository interface {
	ListActive(ctx context.Context) ([]models.Dish, error)
	ListAll(ctx context.Context) ([]models.Dish, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	Create(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dishes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dish).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *repository) Create(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if err := r.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Dish{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
