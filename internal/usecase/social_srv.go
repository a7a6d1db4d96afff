package usecase

import (
	"context"
	"errors"
	"fmt"

	"hirehub/internal/data/entity"
	"hirehub/internal/data/repository"
	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/pkg/social"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SocialService interface {
	Login(ctx context.Context, provider string, req *request.SocialLoginRequest, client request.ClientInfo) (*response.LoginResponse, error)
}

type socialService struct {
	*core
	providers map[string]social.Provider
}

func NewSocialService(c *core, providers map[string]social.Provider) SocialService {
	return &socialService{core: c, providers: providers}
}

// Login links the provider's account to a local one by email, creating it
// when the email is new and a role was supplied. The provider's email is trusted.
func (s *socialService) Login(ctx context.Context, provider string, req *request.SocialLoginRequest, client request.ClientInfo) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	p, ok := s.providers[provider]
	if !ok {
		return nil, newError(ErrNotFound, "Unknown social provider")
	}

	info, err := p.UserInfo(ctx, req.AccessToken)
	if err != nil {
		s.log.Warn("Social user info failed", zap.String("provider", provider), zap.Error(err))
		switch {
		case errors.Is(err, social.ErrInvalidToken):
			return nil, newError(ErrAuthenticationFailed, "The access token is invalid or expired")
		case errors.Is(err, social.ErrNoEmail):
			return nil, fieldError("email", "The social account did not share a verified email address")
		default:
			return nil, newError(ErrUnavailable, fmt.Sprintf("Could not reach %s, try again later", provider))
		}
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(info.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	created := false
	switch {
	case user == nil:
		if user, err = s.createSocialAccount(ctx, info, req.Role); err != nil {
			return nil, err
		}
		created = true

	case !user.IsVerified:
		if err := s.repo.User.MarkVerified(ctx, user.ID); err != nil {
			s.log.Error("Failed to verify linked account", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("mark verified: %w", err)
		}
		user.IsVerified = true
	}

	if !user.IsActive {
		s.metrics.Login("inactive")
		return nil, newError(ErrAuthenticationFailed, "Account disabled, contact admin")
	}
	if err := checkLoginGate(user); err != nil {
		s.metrics.Login("gated")
		return nil, err
	}

	resp, err := s.finishLogin(ctx, user, client)
	if err != nil {
		return nil, err
	}
	resp.Created = created

	s.metrics.Login("success")
	s.log.Info("Social login",
		zap.String("provider", provider),
		zap.String("user_id", user.ID.String()),
		zap.Bool("created", created))

	return resp, nil
}

func (s *socialService) createSocialAccount(ctx context.Context, info *social.Profile, role string) (*entity.User, error) {
	r := entity.UserRole(role)
	if !r.Valid() {
		return nil, fieldError("role", "This field is required for new accounts")
	}

	status := entity.StatusApproved
	if r == entity.RoleProvider {
		status = entity.StatusPending
	}

	now := s.now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        normalizeEmail(info.Email),
		PasswordHash: utils.UnusablePassword(),
		Role:         r,
		IsVerified:   true,
		Status:       status,
		IsActive:     true,
		AuthProvider: entity.AuthProvider(info.Provider),
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		return tx.Profile.Create(ctx, entity.EmptyProfileFor(user.ID, r, now))
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fieldError("email", "user with this email already exists.")
		}
		s.log.Error("Failed to create social account", zap.Error(err))
		return nil, fmt.Errorf("create social account: %w", err)
	}

	s.metrics.Registered(string(r), info.Provider)
	return user, nil
}
