package controllers

import (
	"net/http"

	"github.com/mdewit/werkstatt-backend/api/responses"
	"github.com/mdewit/werkstatt-backend/api/validators"
	"github.com/mdewit/werkstatt-backend/internal/receiving"
	"github.com/mdewit/werkstatt-backend/pkg/logger"
)

func ReceiveStock(svc receiving.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input receiving.ReceiveInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Receive(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logCtx := logg.WithStockOrderID(ctx, result.StockOrderID)
			logg.Info(logCtx, "stock received")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func FastReceiveStock(svc receiving.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input receiving.FastReceiveInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.FastReceive(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logCtx := logg.WithStockOrderID(ctx, result.StockOrderID)
			logg.Info(logCtx, "stock received via fast entry")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ListStockOrders(svc receiving.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orders, err := svc.ListOrders(ctx, validators.QueryString(r, "q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}
