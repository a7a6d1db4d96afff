package adaptor

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/internal/usecase"
	"hirehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PasswordHandler struct {
	service   usecase.PasswordService
	appScheme string
	log       *zap.Logger
}

func NewPasswordHandler(service usecase.PasswordService, appScheme string, log *zap.Logger) *PasswordHandler {
	return &PasswordHandler{
		service:   service,
		appScheme: appScheme,
		log:       log,
	}
}

// RequestReset handles POST /api/request-reset-email
func (h *PasswordHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req request.ResetEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.service.RequestReset(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "request password reset")
		return
	}

	utils.ResponseSuccess(w, msg, nil)
}

// CheckToken handles GET /api/password-reset/{uidb64}/{token}?redirect_url=
func (h *PasswordHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	uidb64 := chi.URLParam(r, "uidb64")
	resetToken := chi.URLParam(r, "token")
	redirectURL := r.URL.Query().Get("redirect_url")

	if redirectURL != "" && !h.allowedRedirect(redirectURL) {
		utils.ResponseBadRequest(w, "Redirect URL scheme is not allowed", nil)
		return
	}

	result, err := h.service.CheckResetToken(r.Context(), uidb64, resetToken)
	if err != nil {
		if !errors.Is(err, usecase.ErrTokenInvalid) {
			handleServiceError(w, h.log, err, "check reset token")
			return
		}
		if redirectURL != "" {
			http.Redirect(w, r, withQuery(redirectURL, "token_valid=False"), http.StatusFound)
			return
		}
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Token is not valid, please request a new one",
			response.ResetCheckResponse{TokenValid: false}, nil)
		return
	}

	if redirectURL == "" {
		utils.ResponseSuccess(w, result.Message, result)
		return
	}

	query := "token_valid=True&message=" + url.QueryEscape(result.Message) +
		"&uidb64=" + url.QueryEscape(result.UIDB64) +
		"&token=" + url.QueryEscape(result.Token)
	http.Redirect(w, r, withQuery(redirectURL, query), http.StatusFound)
}

// SetNewPassword handles PATCH /api/password-reset-complete
func (h *PasswordHandler) SetNewPassword(w http.ResponseWriter, r *http.Request) {
	var req request.SetNewPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetNewPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "set new password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successful", nil)
}

func (h *PasswordHandler) allowedRedirect(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case strings.ToLower(h.appScheme):
		return h.appScheme != ""
	}
	return false
}

func withQuery(base, query string) string {
	if strings.Contains(base, "?") {
		return base + "&" + query
	}
	return base + "?" + query
}
