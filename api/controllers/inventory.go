package controllers

import (
	"net/http"

	"github.com/mdewit/werkstatt-backend/api/responses"
	"github.com/mdewit/werkstatt-backend/api/validators"
	"github.com/mdewit/werkstatt-backend/internal/catalog"
	"github.com/mdewit/werkstatt-backend/internal/inventory"
	"github.com/mdewit/werkstatt-backend/pkg/logger"
)

func ListInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filter := inventory.ListFilter{
			Brand:    validators.QueryString(r, "brand"),
			Model:    validators.QueryString(r, "model"),
			Category: validators.QueryString(r, "category"),
			Status:   validators.QueryString(r, "status"),
		}

		overview, err := svc.Overview(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

// InventoryFilters serves the dropdown values for the overview screen.
func InventoryFilters(invSvc inventory.Service, catSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		values, err := catSvc.FilterValues(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"brands":     values.Brands,
			"models":     values.Models,
			"categories": values.Categories,
			"statuses":   invSvc.Statuses(),
		})
	}
}

func ListAvailableItems(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.Available(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func UpdateItemStatus(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input inventory.StatusUpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.SetStatus(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
