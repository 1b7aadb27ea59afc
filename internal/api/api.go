package api

import (
	"log/slog"
	"net/http"

	"github.com/Spok95/bom-costing/internal/domain/expensetypes"
	"github.com/Spok95/bom-costing/internal/domain/materials"
	"github.com/Spok95/bom-costing/internal/domain/products"
	"github.com/Spok95/bom-costing/internal/domain/units"
	"github.com/prometheus/client_golang/prometheus"
)

var apiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "bom_api_requests_total",
	Help: "Количество запросов к API по операциям.",
}, []string{"op"})

func init() {
	prometheus.MustRegister(apiRequests)
}

type API struct {
	log          *slog.Logger
	materials    *materials.Repo
	products     *products.Repo
	units        *units.Repo
	expenseTypes *expensetypes.Repo
}

func New(log *slog.Logger, m *materials.Repo, p *products.Repo, u *units.Repo, e *expensetypes.Repo) *API {
	return &API{log: log, materials: m, products: p, units: u, expenseTypes: e}
}

func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	a.handle(mux, "GET /api/materials", a.listMaterials)
	a.handle(mux, "POST /api/materials", a.createMaterial)
	a.handle(mux, "GET /api/materials/{id}", a.getMaterial)
	a.handle(mux, "PUT /api/materials/{id}", a.updateMaterial)
	a.handle(mux, "DELETE /api/materials/{id}", a.deleteMaterial)
	a.handle(mux, "GET /api/materials/{id}/usage", a.materialUsage)

	a.handle(mux, "GET /api/products", a.listProducts)
	a.handle(mux, "POST /api/products", a.createProduct)
	a.handle(mux, "GET /api/products/{id}", a.productDetails)
	a.handle(mux, "DELETE /api/products/{id}", a.deleteProduct)
	a.handle(mux, "GET /api/products/{id}/costsheet.xlsx", a.productCostSheet)

	a.handle(mux, "GET /api/units", a.listUnits)
	a.handle(mux, "POST /api/units", a.createUnit)

	a.handle(mux, "GET /api/expense-types", a.listExpenseTypes)
	a.handle(mux, "POST /api/expense-types", a.createExpenseType)

	a.handle(mux, "POST /api/costing", a.computeCost)

	return mux
}

func (a *API) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		apiRequests.WithLabelValues(pattern).Inc()
		h(w, r)
	})
}
