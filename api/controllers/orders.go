package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/api/responses"
	"github.com/pratododia/cardapio-backend/api/validators"
	"github.com/pratododia/cardapio-backend/internal/orders"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
)

type placeOrderRequest struct {
	DishID        string `json:"dish_id" validate:"required,uuid"`
	CustomerName  string `json:"customer_name" validate:"required"`
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// PlaceOrder claims one unit of stock and answers with the WhatsApp intent.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var body placeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := uuid.Parse(body.DishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dish id"))
			return
		}

		intent, err := svc.PlaceOrder(r.Context(), orders.PlaceOrderInput{
			DishID:        dishID,
			CustomerName:  body.CustomerName,
			Address:       body.Address,
			PaymentMethod: body.PaymentMethod,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"order": intent})
	}
}
