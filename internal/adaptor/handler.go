package adaptor

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"hirehub/internal/dto/request"
	"hirehub/internal/usecase"
	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Password *PasswordHandler
	User     *UserHandler
	Admin    *AdminHandler
	Social   *SocialHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Password: NewPasswordHandler(service.Password, config.App.AppScheme, log),
		User:     NewUserHandler(service.User, log),
		Admin:    NewAdminHandler(service.Admin, log),
		Social:   NewSocialHandler(service.Social, log),
	}
}

// decodeJSON reads the request body into dst and writes a 400 when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func clientInfo(r *http.Request) request.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return request.ClientInfo{UserAgent: r.UserAgent(), IPAddress: ip}
}

// handleServiceError maps usecase error kinds to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var serr *usecase.ServiceError
	if !errors.As(err, &serr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed", zap.String("reason", serr.Error()))

	switch {
	case errors.Is(err, usecase.ErrValidation):
		var fields any
		if len(serr.Fields) > 0 {
			fields = serr.Fields
		}
		utils.ResponseBadRequest(w, serr.Message, fields)

	case errors.Is(err, usecase.ErrAuthenticationFailed):
		utils.ResponseUnauthorized(w, serr.Message)

	case errors.Is(err, usecase.ErrAccountNotVerified),
		errors.Is(err, usecase.ErrApprovalPending),
		errors.Is(err, usecase.ErrApprovalRejected),
		errors.Is(err, usecase.ErrPermissionDenied):
		utils.ResponseForbidden(w, serr.Message)

	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, serr.Message)

	case errors.Is(err, usecase.ErrTokenExpired),
		errors.Is(err, usecase.ErrTokenInvalid):
		utils.ResponseBadRequest(w, serr.Message, nil)

	case errors.Is(err, usecase.ErrUnavailable):
		utils.ResponseServiceUnavailable(w, serr.Message)

	default:
		log.Error("Unmapped service error", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
