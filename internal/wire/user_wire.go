package wire

import (
	"hirehub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile routes and the staff-only provider review routes.
func wireUser(r chi.Router, handler *adaptor.Handler, authed, admin middlewareFunc) {
	user := handler.User

	// ==================== PROTECTED USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Get("/api/profile", user.GetProfile)
		r.Patch("/api/complete-customer-profile", user.CompleteCustomerProfile)
		r.Patch("/api/complete-provider-profile", user.CompleteProviderProfile)
	})

	// ==================== ADMIN ROUTES ====================
	// requires both authentication AND staff
	r.With(authed, admin).Route("/api/admin/providers", func(r chi.Router) {
		r.Get("/", handler.Admin.ListProviders)        // GET /api/admin/providers?status=pending&page=1
		r.Post("/{id}/approve", handler.Admin.Approve) // POST /api/admin/providers/{id}/approve
		r.Post("/{id}/reject", handler.Admin.Reject)   // POST /api/admin/providers/{id}/reject
	})
}
