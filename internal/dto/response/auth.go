package response

import (
	"time"

	"hirehub/internal/data/entity"
)

type UserResponse struct {
	ID           string                `json:"id"`
	Email        string                `json:"email"`
	Username     *string               `json:"username,omitempty"`
	Role         entity.UserRole       `json:"role"`
	IsVerified   bool                  `json:"is_verified"`
	Status       entity.ApprovalStatus `json:"status,omitempty"`
	AuthProvider entity.AuthProvider   `json:"auth_provider"`
	CreatedAt    time.Time             `json:"created_at"`
}

type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// LoginResponse is returned by password and social login.
type LoginResponse struct {
	TokenPair
	Email           string          `json:"email"`
	Username        *string         `json:"username,omitempty"`
	Role            entity.UserRole `json:"role"`
	ProfileComplete bool            `json:"profile_complete"`
	RedirectURL     string          `json:"redirect_url"`
	Created         bool            `json:"created,omitempty"`
}

// ResetCheckResponse reports whether a reset link may proceed to SetNewPassword.
type ResetCheckResponse struct {
	TokenValid bool   `json:"token_valid"`
	Message    string `json:"message,omitempty"`
	UIDB64     string `json:"uidb64,omitempty"`
	Token      string `json:"token,omitempty"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
		AuthProvider: user.AuthProvider,
		CreatedAt:    user.CreatedAt,
	}
	if user.Role == entity.RoleProvider {
		resp.Status = user.Status
	}
	return resp
}
