package usecase

import (
	"context"
	"fmt"
	"net/url"

	"hirehub/internal/data/entity"
	"hirehub/internal/data/repository"
	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/pkg/mailer"
	"hirehub/pkg/token"
	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

// ResetRequestedMessage is returned whether or not the email is registered.
const ResetRequestedMessage = "If an account exists with this email, a reset link has been sent."

const invalidResetLink = "Invalid reset link"

type PasswordService interface {
	RequestReset(ctx context.Context, req *request.ResetEmailRequest) (string, error)
	CheckResetToken(ctx context.Context, uidb64, resetToken string) (*response.ResetCheckResponse, error)
	SetNewPassword(ctx context.Context, req *request.SetNewPasswordRequest) error
}

type passwordService struct {
	*core
}

func NewPasswordService(c *core) PasswordService {
	return &passwordService{core: c}
}

func resetState(user *entity.User) token.ResetState {
	return token.ResetState{
		UserID:       user.ID,
		PasswordHash: user.PasswordHash,
		LastLoginAt:  user.LastLoginAt,
	}
}

func (s *passwordService) RequestReset(ctx context.Context, req *request.ResetEmailRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err))
		return "", fmt.Errorf("find user: %w", err)
	}

	if user != nil {
		uidb64 := token.EncodeUID(user.ID)
		resetToken := s.resets.Make(resetState(user))
		link := fmt.Sprintf("%s/api/password-reset/%s/%s?redirect_url=%s",
			s.config.App.BaseURL, uidb64, resetToken, url.QueryEscape(req.RedirectURL))

		s.sendMailLater(ctx, "reset", mailer.ResetEmail(user.Email, link))
		s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	}

	return ResetRequestedMessage, nil
}

func (s *passwordService) CheckResetToken(ctx context.Context, uidb64, resetToken string) (*response.ResetCheckResponse, error) {
	userID, err := token.DecodeUID(uidb64)
	if err != nil {
		return nil, newError(ErrValidation, "Token is not valid, please request a new one")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for reset check", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	if !s.resets.Check(resetState(user), resetToken) {
		return nil, newError(ErrTokenInvalid, "Token is not valid, please request a new one")
	}

	return &response.ResetCheckResponse{
		TokenValid: true,
		Message:    "Credentials Valid",
		UIDB64:     uidb64,
		Token:      resetToken,
	}, nil
}

// SetNewPassword reports every link problem with the same error so callers
// cannot tell which check failed.
func (s *passwordService) SetNewPassword(ctx context.Context, req *request.SetNewPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	userID, err := token.DecodeUID(req.UIDB64)
	if err != nil {
		return newError(ErrAuthenticationFailed, invalidResetLink)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		if err != nil {
			s.log.Error("Failed to find user for password reset", zap.Error(err))
		}
		return newError(ErrAuthenticationFailed, invalidResetLink)
	}

	if !s.resets.Check(resetState(user), req.Token) {
		s.log.Warn("Rejected password reset token", zap.String("user_id", user.ID.String()))
		return newError(ErrAuthenticationFailed, invalidResetLink)
	}

	hashedPassword, err := utils.HashPassword(req.Password, s.config.JWT.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
			return err
		}
		return tx.Session.RevokeAllUserSessions(ctx, user.ID)
	})
	if err != nil {
		s.log.Error("Failed to reset password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return newError(ErrAuthenticationFailed, invalidResetLink)
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}
