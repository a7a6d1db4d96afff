package adaptor

import (
	"context"
	"net/http"

	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/internal/usecase"
	"hirehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// ListProviders handles GET /api/admin/providers
func (h *AdminHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ProviderListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status: query.Get("status"),
	}

	// Validate per_page max
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	providers, err := h.service.ListProviders(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list providers")
		return
	}

	utils.ResponseSuccess(w, "Providers retrieved successfully", providers)
}

// Approve handles POST /api/admin/providers/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve provider", h.service.Approve)
}

// Reject handles POST /api/admin/providers/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject provider", h.service.Reject)
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, operation string,
	fn func(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid provider ID", nil)
		return
	}

	user, err := fn(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "Provider status is "+string(user.Status), user)
}
