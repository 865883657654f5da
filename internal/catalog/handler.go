package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerkeep/ledgerkeep/internal/platform/httpx"
	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Handler wires HTTP endpoints for the catalog module.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs catalog handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/in-stock", h.listInStock)
		r.Get("/{id}", h.getProduct)
		r.Post("/", h.createProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Get("/{id}/products", h.listByCategory)
	})
}

type productRequest struct {
	Name          string `json:"name" validate:"required"`
	Unit          string `json:"unit" validate:"required,oneof=PCS KG LBS GALLON METER FEET"`
	CategoryID    int64  `json:"category_id" validate:"required,gt=0"`
	LowLimitAlert int    `json:"low_limit_alert" validate:"gte=0"`
}

type productResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Unit            string `json:"unit"`
	CategoryID      int64  `json:"category_id"`
	QuantityInStock int    `json:"quantity_in_stock"`
	LowLimitAlert   int    `json:"low_limit_alert"`
}

func toProductResponse(p Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Unit:            string(p.Unit),
		CategoryID:      p.CategoryID,
		QuantityInStock: p.QuantityInStock,
		LowLimitAlert:   p.LowLimitAlert,
	}
}

func (h *Handler) company(w http.ResponseWriter, r *http.Request) (int64, bool) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return 0, false
	}
	return companyID, true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.company(w, r)
	if !ok {
		return
	}
	products, err := h.service.ListProducts(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) listInStock(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.company(w, r)
	if !ok {
		return
	}
	products, err := h.service.ListInStock(r.Context(), companyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid product id")
		return
	}
	product, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.company(w, r); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}
	products, err := h.service.ListByCategory(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.company(w, r)
	if !ok {
		return
	}
	categories, err := h.service.ListCategories(r.Context(), companyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	type categoryResponse struct {
		ID           int64  `json:"id"`
		Description  string `json:"description"`
		ProductCount int    `json:"product_count"`
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Description: c.Description, ProductCount: c.ProductCount})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (productRequest, bool) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		fields := map[string]string{}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields[fieldErr.Field()] = fieldErr.Error()
		}
		httpx.FieldProblem(w, fields)
		return req, false
	}
	return req, true
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.company(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	input := ProductInput{
		Name:          req.Name,
		Unit:          ProductUnit(req.Unit),
		CategoryID:    req.CategoryID,
		LowLimitAlert: req.LowLimitAlert,
	}
	product, fieldErrs, err := h.service.Create(r.Context(), input, companyID)
	if err != nil {
		h.logger.Error("create product", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if fieldErrs.HasErrors() {
		httpx.FieldProblem(w, fieldErrs.ByField())
		return
	}
	httpx.JSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.company(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid product id")
		return
	}
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	input := ProductInput{
		ID:            id,
		Name:          req.Name,
		Unit:          ProductUnit(req.Unit),
		CategoryID:    req.CategoryID,
		LowLimitAlert: req.LowLimitAlert,
	}
	product, fieldErrs, err := h.service.Update(r.Context(), input, companyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if fieldErrs.HasErrors() {
		httpx.FieldProblem(w, fieldErrs.ByField())
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.company(w, r); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid product id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
