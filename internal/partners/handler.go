package partners

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerkeep/ledgerkeep/internal/platform/httpx"
	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Handler wires HTTP endpoints for the client/vendor directory.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs partners handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers client/vendor routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/client-vendors", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Post("/", h.create)
	})
}

type partnerRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=CLIENT VENDOR"`
}

type partnerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}
	partnerType := PartnerType(r.URL.Query().Get("type"))
	list, err := h.service.List(r.Context(), companyID, partnerType)
	if err != nil {
		h.logger.Error("list client/vendors", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]partnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, partnerResponse{ID: p.ID, Name: p.Name, Type: string(p.Type)})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client/vendor id")
		return
	}
	partner, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, partnerResponse{ID: partner.ID, Name: partner.Name, Type: string(partner.Type)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := shared.CompanyFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "company identity required")
		return
	}
	var req partnerRequest
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
	partner, err := h.service.Create(r.Context(), companyID, req.Name, PartnerType(req.Type))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, partnerResponse{ID: partner.ID, Name: partner.Name, Type: string(partner.Type)})
}
