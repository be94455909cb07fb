package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dish is a sellable menu item. RemainingStock is the only field with a
// concurrency-relevant invariant: 0 <= remaining_stock <= initial_stock, and it
// is only ever decremented inside the order transaction.
type Dish struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string          `gorm:"column:name;not null" json:"name"`
	Description    *string         `gorm:"column:description" json:"description,omitempty"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	InitialStock   int             `gorm:"column:initial_stock;not null;default:0" json:"initial_stock"`
	RemainingStock int             `gorm:"column:remaining_stock;not null;default:0" json:"remaining_stock"`
	// No gorm default tag on Active: with one, inserting an inactive dish
	// omits the zero-value false and the column default flips it to true.
	// The migration still defaults the column for raw SQL inserts.
	Active    bool      `gorm:"column:active;not null" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Dish) TableName() string {
	return "dishes"
}
