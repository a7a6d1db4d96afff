package wire

import (
	"net/http"

	"hirehub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

type middlewareFunc = func(http.Handler) http.Handler

func wireAuth(r chi.Router, handler *adaptor.Handler, authed, throttled middlewareFunc) {
	auth := handler.Auth
	password := handler.Password

	// ==================== PUBLIC ROUTES ====================
	r.With(throttled).Post("/api/register/customer", auth.RegisterCustomer)
	r.With(throttled).Post("/api/register/provider", auth.RegisterProvider)
	r.With(throttled).Post("/api/login", auth.Login)
	r.With(throttled).Post("/api/token/refresh", auth.Refresh)
	r.Get("/api/email-verify", auth.VerifyEmail)

	r.With(throttled).Post("/api/request-reset-email", password.RequestReset)
	r.Get("/api/password-reset/{uidb64}/{token}", password.CheckToken)
	r.Patch("/api/password-reset-complete", password.SetNewPassword)

	r.With(throttled).Post("/api/social/{provider}", handler.Social.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(authed).Post("/api/logout", auth.Logout)
}
