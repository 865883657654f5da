package invoice

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/catalog"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/httpx"
	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Handler wires HTTP endpoints for the invoice module.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs invoice handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Get("/{id}/lines", h.lines)
		r.Post("/", h.create)
		r.Post("/{id}/approve", h.approve)
		r.Delete("/{id}", h.remove)
	})
}

type lineRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Price     string `json:"price" validate:"required"`
	TaxRate   int    `json:"tax_rate" validate:"gte=0,lte=100"`
}

type createRequest struct {
	Type      string        `json:"type" validate:"required,oneof=PURCHASE SALES"`
	PartnerID int64         `json:"partner_id" validate:"required,gt=0"`
	Lines     []lineRequest `json:"lines" validate:"required,min=1,dive"`
}

type invoiceResponse struct {
	ID        int64  `json:"id"`
	No        string `json:"invoice_no"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	PartnerID int64  `json:"partner_id"`
	Price     string `json:"price"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`

	LowStockAlert string `json:"low_stock_alert,omitempty"`
}

func toInvoiceResponse(inv Invoice) invoiceResponse {
	return invoiceResponse{
		ID:        inv.ID,
		No:        inv.No,
		Type:      string(inv.Type),
		Status:    string(inv.Status),
		Date:      inv.Date.Format("2006-01-02"),
		PartnerID: inv.PartnerID,
		Price:     inv.Price.StringFixed(2),
		Tax:       inv.Tax.StringFixed(2),
		Total:     inv.Total.StringFixed(2),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}
	invoiceType := Type(r.URL.Query().Get("type"))
	if invoiceType != TypePurchase && invoiceType != TypeSales {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "type must be PURCHASE or SALES")
		return
	}
	invoices, err := h.service.List(r.Context(), companyID, invoiceType)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}
	inv, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toInvoiceResponse(inv))
}

func (h *Handler) lines(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}
	lines, err := h.service.Lines(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	type lineResponse struct {
		ID        int64  `json:"id"`
		ProductID int64  `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Price     string `json:"price"`
		TaxRate   int    `json:"tax_rate"`
		Total     string `json:"total"`
	}
	out := make([]lineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price.StringFixed(2),
			TaxRate:   line.TaxRate,
			Total:     line.Total.StringFixed(2),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		fields := map[string]string{}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields[fieldErr.Field()] = fieldErr.Error()
		}
		httpx.FieldProblem(w, fields)
		return
	}
	input := CreateInput{Type: Type(req.Type), PartnerID: req.PartnerID}
	for _, line := range req.Lines {
		price, err := decimal.NewFromString(line.Price)
		if err != nil || price.IsNegative() {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "line price must be a non-negative decimal")
			return
		}
		input.Lines = append(input.Lines, LineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
			TaxRate:   line.TaxRate,
		})
	}
	inv, err := h.service.Create(r.Context(), companyID, input)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toInvoiceResponse(inv))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}
	inv, err := h.service.Approve(r.Context(), id)
	if err != nil && !catalog.IsLowStock(err) {
		httpx.RespondError(w, err)
		return
	}
	resp := toInvoiceResponse(inv)
	if catalog.IsLowStock(err) {
		// Approval already committed; the alert is advisory.
		resp.LowStockAlert = err.Error()
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
