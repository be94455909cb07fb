package dishes

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CreateDishInput carries the admin-provided fields for a new dish.
type CreateDishInput struct {
	Name         string
	Description  *string
	Price        decimal.Decimal
	InitialStock int
}

func (in *CreateDishInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		if trimmed == "" {
			in.Description = nil
		} else {
			in.Description = &trimmed
		}
	}
}
