package adaptor

import (
	"net/http"

	"hirehub/internal/dto/request"
	"hirehub/internal/usecase"
	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// RegisterCustomer handles POST /api/register/customer
func (h *AuthHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.RegisterCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register customer")
		return
	}

	utils.ResponseCreated(w, resp.Message, resp.User)
}

// RegisterProvider handles POST /api/register/provider
func (h *AuthHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.RegisterProvider(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register provider")
		return
	}

	utils.ResponseCreated(w, resp.Message, resp.User)
}

// VerifyEmail handles GET /api/email-verify?token=
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.service.VerifyEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
		handleServiceError(w, h.log, err, "verify email")
		return
	}

	utils.ResponseSuccess(w, "Successfully activated", nil)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/logout. The access token is checked by the auth middleware.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Logout(r.Context(), userID, req.Refresh); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseNoContent(w)
}

// Refresh handles POST /api/token/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.Refresh, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "refresh token")
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", pair)
}
