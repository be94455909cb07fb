package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/api/responses"
	"github.com/pratododia/cardapio-backend/api/validators"
	"github.com/pratododia/cardapio-backend/internal/dishes"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createDishRequest struct {
	Name         string          `json:"name" validate:"required"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	InitialStock int             `json:"initial_stock" validate:"gte=0"`
}

type setDishActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// AdminListDishes returns every dish, active or not.
func AdminListDishes(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"dishes": list})
	}
}

func AdminCreateDish(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		var body createDishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Create(r.Context(), dishes.CreateDishInput{
			Name:         body.Name,
			Description:  body.Description,
			Price:        body.Price,
			InitialStock: body.InitialStock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"dish": dish})
	}
}

func AdminDeleteDish(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		dishID, err := parseDishID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), dishID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminSetDishActive(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		dishID, err := parseDishID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setDishActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.SetActive(r.Context(), dishID, *body.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"dish": dish})
	}
}

func parseDishID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "dishId")
	dishID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dish id")
	}
	return dishID, nil
}
