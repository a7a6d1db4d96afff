package adaptor

import (
	"net/http"

	"hirehub/internal/dto/request"
	"hirehub/internal/usecase"
	"hirehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SocialHandler struct {
	service usecase.SocialService
	log     *zap.Logger
}

func NewSocialHandler(service usecase.SocialService, log *zap.Logger) *SocialHandler {
	return &SocialHandler{
		service: service,
		log:     log,
	}
}

// Login handles POST /api/social/{provider}
func (h *SocialHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.SocialLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), chi.URLParam(r, "provider"), &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "social login")
		return
	}

	if resp.Created {
		utils.ResponseCreated(w, "Account created", resp)
		return
	}
	utils.ResponseSuccess(w, "Login successful", resp)
}
