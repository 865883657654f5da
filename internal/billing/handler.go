package billing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerkeep/ledgerkeep/internal/platform/httpx"
	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Handler wires HTTP endpoints for subscription payments.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs billing handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers billing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/{id}/pay", h.markPaid)
	})
}

type paymentResponse struct {
	ID          int64  `json:"id"`
	Year        int    `json:"year"`
	Month       string `json:"month"`
	Amount      string `json:"amount"`
	Paid        bool   `json:"paid"`
	PaymentDate string `json:"payment_date"`
}

func toPaymentResponse(p Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		Year:        p.Year,
		Month:       p.Month.String(),
		Amount:      p.Amount.StringFixed(2),
		Paid:        p.Paid,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid year")
			return
		}
		year = parsed
	}
	payments, err := h.service.ListPayments(r.Context(), companyID, year)
	if err != nil {
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payment id")
		return
	}
	payment, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPaymentResponse(payment))
}
