package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hirehub/internal/data/repository"
	"hirehub/pkg/token"
	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer access token and stores the caller in the request context.
func Auth(tokens *token.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Parse(parts[1], token.TypeAccess)
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					utils.ResponseUnauthorized(w, "Token has expired")
					return
				}
				logger.Debug("rejected access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Given token not valid for any token type")
				return
			}

			userID, err := claims.UserUUID()
			if err != nil {
				utils.ResponseUnauthorized(w, "Given token not valid for any token type")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			ctx = utils.SetTokenIDContext(ctx, claims.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only active staff accounts through. Must run after Auth.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || !user.IsStaff || !user.IsActive {
				logger.Warn("admin check: non-staff access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
