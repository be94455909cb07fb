package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/events"
	"github.com/pratododia/cardapio-backend/pkg/logger"
	"github.com/pratododia/cardapio-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Outcome labels recorded on the orders counter.
const (
	outcomePlaced     = "placed"
	outcomeOutOfStock = "out_of_stock"
	outcomeNotFound   = "not_found"
	outcomeFailed     = "failed"
)

// Service defines the public ordering surface.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderIntent, error)
}

type service struct {
	repo     Repository
	engine   StockDecrementer
	whatsapp config.WhatsAppConfig
	events   events.Publisher
	metrics  *metrics.OrderMetrics
	logg     *logger.Logger
}

// NewService wires the ordering flow together.
func NewService(repo Repository, engine StockDecrementer, whatsapp config.WhatsAppConfig, publisher events.Publisher, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if engine == nil {
		return nil, fmt.Errorf("stock engine required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		repo:     repo,
		engine:   engine,
		whatsapp: whatsapp,
		events:   publisher,
		metrics:  orderMetrics,
		logg:     logg,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderIntent, error) {
	input.normalize()
	if err := s.validate(input); err != nil {
		return nil, err
	}

	// Misconfiguration surfaces before any stock is touched.
	if digitsOnly(s.whatsapp.Number) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeConfig, "whatsapp destination number is not configured")
	}

	dish, err := s.repo.FindDish(ctx, input.DishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordOutcome(outcomeNotFound)
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		s.recordOutcome(outcomeFailed)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dish")
	}

	retries, err := s.engine.TryDecrementStock(ctx, input.DishID)
	if s.metrics != nil {
		s.metrics.ObserveRetries(retries)
	}
	if err != nil {
		s.recordOutcome(outcomeForError(err))
		return nil, err
	}

	s.recordOutcome(outcomePlaced)
	s.publishStockChange(ctx, dish.ID)

	message := FormatOrderMessage(dish.Name, input.CustomerName, input.Address, input.PaymentMethod, dish.Price)
	link, err := BuildWhatsAppLink(s.whatsapp.Number, message)
	if err != nil {
		// Stock is already consumed at this point; the guard above makes
		// this unreachable unless config changed mid-flight.
		return nil, pkgerrors.Wrap(pkgerrors.CodeConfig, err, "build whatsapp link")
	}

	return &OrderIntent{
		DishID:       dish.ID,
		DishName:     dish.Name,
		Total:        dish.Price,
		Message:      message,
		WhatsAppLink: link,
	}, nil
}

func (s *service) validate(input PlaceOrderInput) error {
	if input.DishID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dish id required")
	}
	if input.CustomerName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.Address == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address required")
	}
	if input.PaymentMethod == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method required")
	}
	return nil
}

// publishStockChange reloads the counter so subscribers see the committed
// value. Publish failures are logged and never surfaced to the customer.
func (s *service) publishStockChange(ctx context.Context, dishID uuid.UUID) {
	fresh, err := s.repo.FindDish(ctx, dishID)
	if err != nil {
		s.logError(ctx, "reload dish after decrement", err)
		return
	}
	if s.metrics != nil {
		s.metrics.SetStockLevel(dishID.String(), fresh.RemainingStock)
	}
	if err := s.events.PublishMenuEvent(ctx, events.StockChanged(dishID, fresh.RemainingStock)); err != nil {
		s.logError(ctx, "publish stock event", err)
	}
}

func (s *service) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.IncOutcome(outcome)
	}
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}

func outcomeForError(err error) string {
	switch {
	case pkgerrors.Is(err, pkgerrors.CodeOutOfStock):
		return outcomeOutOfStock
	case pkgerrors.Is(err, pkgerrors.CodeNotFound):
		return outcomeNotFound
	default:
		return outcomeFailed
	}
}
