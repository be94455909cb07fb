package orders

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderInput carries the customer fields for a single-dish order.
type PlaceOrderInput struct {
	DishID        uuid.UUID
	CustomerName  string
	Address       string
	PaymentMethod string
}

func (in *PlaceOrderInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Address = strings.TrimSpace(in.Address)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
}

// OrderIntent is the outcome of a placed order: stock already consumed, link
// ready for the customer to confirm over WhatsApp.
type OrderIntent struct {
	DishID       uuid.UUID       `json:"dish_id"`
	DishName     string          `json:"dish"`
	Total        decimal.Decimal `json:"total"`
	Message      string          `json:"message"`
	WhatsAppLink string          `json:"whatsapp_link"`
}
