package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jlizarraga/healthybreads-backend/api/controllers"
	"github.com/jlizarraga/healthybreads-backend/api/middleware"
	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	"github.com/jlizarraga/healthybreads-backend/internal/checkout"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	"github.com/jlizarraga/healthybreads-backend/pkg/config"
	"github.com/jlizarraga/healthybreads-backend/pkg/db"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

// NewRouter wires the storefront and admin surfaces.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogStore *catalog.Store,
	ledger *orders.Ledger,
	registry *checkout.Registry,
	checkoutService *checkout.Service,
	pingers ...db.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers...))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogStore, logg))

		r.Route("/captures", func(r chi.Router) {
			r.Post("/", controllers.CreateCapture(registry, catalogStore, logg))
			r.Route("/{captureId}", func(r chi.Router) {
				r.Get("/", controllers.GetCapture(registry, catalogStore, logg))
				r.Put("/items/{productId}", controllers.SetCaptureItem(registry, catalogStore, logg))
				r.Delete("/items/{productId}", controllers.DeselectCaptureItem(registry, catalogStore, logg))
				r.Post("/continue", controllers.ContinueCapture(registry, catalogStore, logg))
				r.Post("/back", controllers.BackCapture(registry, catalogStore, logg))
				r.Post("/submit", controllers.SubmitCapture(checkoutService, registry, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(cfg.Admin, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminGate(cfg.Admin, logg))
			r.Get("/inventory", controllers.AdminListInventory(catalogStore, logg))
			r.Put("/inventory/{productId}/stock", controllers.AdminSetStock(catalogStore, logg))
			r.Get("/inventory/export", controllers.AdminExportInventory(catalogStore, logg))
			r.Get("/orders", controllers.AdminListOrders(ledger, logg))
		})
	})

	// The bare dashboard path always lands on the login screen.
	r.Get("/admin", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin/login", http.StatusTemporaryRedirect)
	})

	return r
}
