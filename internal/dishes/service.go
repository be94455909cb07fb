package dishes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/events"
	"github.com/pratododia/cardapio-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service defines the dish operations backing the menu and admin surfaces.
type Service interface {
	ListActive(ctx context.Context) ([]models.Dish, error)
	ListAll(ctx context.Context) ([]models.Dish, error)
	Create(ctx context.Context, input CreateDishInput) (*models.Dish, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Dish, error)
}

type service struct {
	repo   Repository
	events events.Publisher
	logg   *logger.Logger
}

// NewService wires the dish service with its repository and event publisher.
func NewService(repo Repository, publisher events.Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dishes repository required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{repo: repo, events: publisher, logg: logg}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Dish, error) {
	dishes, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active dishes")
	}
	return dishes, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Dish, error) {
	dishes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dishes")
	}
	return dishes, nil
}

func (s *service) Create(ctx context.Context, input CreateDishInput) (*models.Dish, error) {
	input.normalize()
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dish name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.InitialStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial stock must not be negative")
	}

	dish := &models.Dish{
		ID:             uuid.New(),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		InitialStock:   input.InitialStock,
		RemainingStock: input.InitialStock,
		Active:         true,
	}

	created, err := s.repo.Create(ctx, dish)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dish")
	}

	s.publish(ctx, events.MenuEvent{
		Type:           events.TypeDishCreated,
		DishID:         created.ID,
		RemainingStock: &created.RemainingStock,
		Active:         &created.Active,
	})
	return created, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dish id required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete dish")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
	}

	s.publish(ctx, events.MenuEvent{
		Type:   events.TypeDishDeleted,
		DishID: id,
	})
	return nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Dish, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dish id required")
	}

	affected, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update dish visibility")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
	}

	dish, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload dish")
	}

	s.publish(ctx, events.MenuEvent{
		Type:           events.TypeDishUpdated,
		DishID:         dish.ID,
		RemainingStock: &dish.RemainingStock,
		Active:         &dish.Active,
	})
	return dish, nil
}

func (s *service) publish(ctx context.Context, event events.MenuEvent) {
	if err := s.events.PublishMenuEvent(ctx, event); err != nil && s.logg != nil {
		s.logg.Error(ctx, "publish menu event", err)
	}
}
