package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mdewit/werkstatt-backend/api/controllers"
	"github.com/mdewit/werkstatt-backend/api/middleware"
	"github.com/mdewit/werkstatt-backend/internal/bookings"
	"github.com/mdewit/werkstatt-backend/internal/catalog"
	"github.com/mdewit/werkstatt-backend/internal/inventory"
	"github.com/mdewit/werkstatt-backend/internal/receiving"
	"github.com/mdewit/werkstatt-backend/pkg/config"
	"github.com/mdewit/werkstatt-backend/pkg/db"
	"github.com/mdewit/werkstatt-backend/pkg/logger"
	"github.com/mdewit/werkstatt-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	requestMetrics *metrics.RequestMetrics,
	catalogService catalog.Service,
	inventoryService inventory.Service,
	receivingService receiving.Service,
	bookingsService bookings.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(requestMetrics),
	)

	r.Route("/healthz", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/part-types", func(r chi.Router) {
			r.Get("/", controllers.ListPartTypes(catalogService, logg))
			r.Post("/", controllers.CreatePartType(catalogService, logg))
			r.Get("/{id}", controllers.GetPartType(catalogService, logg))
			r.Put("/{id}", controllers.UpdatePartType(catalogService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(inventoryService, logg))
			r.Get("/filters", controllers.InventoryFilters(inventoryService, catalogService, logg))
			r.Get("/available", controllers.ListAvailableItems(inventoryService, logg))
			r.Post("/{id}/status", controllers.UpdateItemStatus(inventoryService, logg))
		})

		r.Route("/stock-orders", func(r chi.Router) {
			r.Get("/", controllers.ListStockOrders(receivingService, logg))
			r.Post("/", controllers.ReceiveStock(receivingService, logg))
			r.Post("/fast", controllers.FastReceiveStock(receivingService, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.ListBookings(bookingsService, logg))
			r.Post("/", controllers.CreateBooking(bookingsService, logg))
			r.Get("/{id}", controllers.GetBooking(bookingsService, logg))
			r.Put("/{id}", controllers.UpdateBooking(bookingsService, logg))
			r.Post("/{id}/status", controllers.UpdateBookingStatus(bookingsService, logg))
		})
	})

	return r
}
