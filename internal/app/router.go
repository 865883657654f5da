package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ledgerkeep/ledgerkeep/internal/billing"
	"github.com/ledgerkeep/ledgerkeep/internal/catalog"
	"github.com/ledgerkeep/ledgerkeep/internal/invoice"
	"github.com/ledgerkeep/ledgerkeep/internal/partners"
	"github.com/ledgerkeep/ledgerkeep/internal/reporting"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CatalogHandler   *catalog.Handler
	InvoiceHandler   *invoice.Handler
	PartnersHandler  *partners.Handler
	BillingHandler   *billing.Handler
	ReportingHandler *reporting.Handler
}

// NewRouter constructs the chi.Router with Ledgerkeep defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if params.CatalogHandler != nil {
			params.CatalogHandler.MountRoutes(r)
		}
		if params.InvoiceHandler != nil {
			params.InvoiceHandler.MountRoutes(r)
		}
		if params.PartnersHandler != nil {
			params.PartnersHandler.MountRoutes(r)
		}
		if params.BillingHandler != nil {
			params.BillingHandler.MountRoutes(r)
		}
		if params.ReportingHandler != nil {
			params.ReportingHandler.MountRoutes(r)
		}
	})

	return r
}
