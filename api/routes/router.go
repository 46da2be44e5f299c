package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printflowhq/printflow-backend/api/controllers"
	"github.com/printflowhq/printflow-backend/api/middleware"
	"github.com/printflowhq/printflow-backend/internal/catalog"
	"github.com/printflowhq/printflow-backend/internal/costs"
	"github.com/printflowhq/printflow-backend/internal/dashboard"
	"github.com/printflowhq/printflow-backend/internal/directory"
	"github.com/printflowhq/printflow-backend/internal/orders"
	"github.com/printflowhq/printflow-backend/internal/stock"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Logger    *logger.Logger
	Catalog   catalog.Service
	Orders    orders.Service
	Stock     stock.Service
	Directory directory.Service
	Costs     costs.Service
	Dashboard dashboard.Service
	Pingers   map[string]controllers.Pinger
}

func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(params.Logger))
	r.Use(middleware.RequestID(params.Logger))
	r.Use(middleware.Logging(params.Logger))

	health := controllers.NewHealthController(params.Logger, params.Pingers)
	products := controllers.NewProductsController(params.Catalog, params.Logger)
	orderCtrl := controllers.NewOrdersController(params.Orders, params.Logger)
	stockCtrl := controllers.NewStockController(params.Stock, params.Logger)
	dir := controllers.NewDirectoryController(params.Directory, params.Logger)
	costCtrl := controllers.NewCostsController(params.Costs, params.Logger)
	dash := controllers.NewDashboardController(params.Dashboard, params.Logger)

	r.Get("/health/live", health.Live)
	r.Get("/health/ready", health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products", products.Create)
		r.Get("/products", products.List)
		r.Post("/products/{productId}/archive", products.Archive)

		r.Post("/orders", orderCtrl.Create)
		r.Get("/orders", orderCtrl.List)

		r.Post("/stock/adjust", stockCtrl.Adjust)
		r.Get("/stock", stockCtrl.Balances)
		r.Get("/stock/movements", stockCtrl.Movements)

		r.Post("/customers/ensure", dir.EnsureCustomer)
		r.Get("/customers", dir.ListCustomers)
		r.Post("/stores/ensure", dir.EnsureStore)
		r.Get("/stores", dir.ListStores)
		r.Post("/suppliers/ensure", dir.EnsureSupplier)
		r.Get("/suppliers", dir.ListSuppliers)

		r.Post("/costs", costCtrl.Record)
		r.Get("/costs", costCtrl.List)

		r.Get("/dashboard/summary", dash.Summary)
	})

	return r
}
