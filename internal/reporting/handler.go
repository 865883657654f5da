package reporting

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerkeep/ledgerkeep/internal/platform/httpx"
	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Handler wires HTTP endpoints for profit/loss reports.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs reporting handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/profit-loss", h.monthlyProfitLoss)
		r.Get("/product-profit-loss", h.productProfitLoss)
	})
}

type monthlyReportResponse struct {
	Entries []Entry  `json:"entries"`
	Years   []string `json:"years"`
	Scale   int      `json:"scale,omitempty"`
}

type productReportResponse struct {
	Entries []Entry  `json:"entries"`
	Pages   []string `json:"pages"`
	Scale   int      `json:"scale,omitempty"`
}

func (h *Handler) monthlyProfitLoss(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}

	var entries []Entry
	var err error
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid year")
			return
		}
		entries, err = h.service.MonthlyProfitLossForYear(r.Context(), companyID, year)
	} else {
		entries, err = h.service.MonthlyProfitLossSinceSignup(r.Context(), companyID)
	}
	if err != nil {
		h.logger.Error("monthly profit/loss", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	years, err := h.service.ReportYears(r.Context(), companyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	resp := monthlyReportResponse{Entries: entries, Years: years}
	if scale, err := ChartScale(entries); err == nil {
		resp.Scale = scale
	} else if !errors.Is(err, ErrEmptySeries) {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) productProfitLoss(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid page")
			return
		}
		page = parsed
	}

	entries, err := h.service.ProductProfitLossBreakdown(r.Context(), companyID)
	if err != nil {
		h.logger.Error("product profit/loss", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	pageEntries, err := Paginate(entries, page, DefaultPageSize)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	resp := productReportResponse{Entries: pageEntries, Pages: PageOptions(len(entries))}
	if scale, err := ChartScale(entries); err == nil {
		resp.Scale = scale
	} else if !errors.Is(err, ErrEmptySeries) {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}
