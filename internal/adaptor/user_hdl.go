package adaptor

import (
	"net/http"

	"hirehub/internal/dto/request"
	"hirehub/internal/usecase"
	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context (set by auth middleware)
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// CompleteCustomerProfile handles PATCH /api/complete-customer-profile
func (h *UserHandler) CompleteCustomerProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CustomerProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.CompleteCustomerProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "complete customer profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

// CompleteProviderProfile handles PATCH /api/complete-provider-profile
func (h *UserHandler) CompleteProviderProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ProviderProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.CompleteProviderProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "complete provider profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}
