package usecase

import (
	"context"
	"fmt"

	"hirehub/internal/data/entity"
	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/pkg/mailer"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	ListProviders(ctx context.Context, req *request.ProviderListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Approve(ctx context.Context, providerID uuid.UUID) (*response.UserResponse, error)
	Reject(ctx context.Context, providerID uuid.UUID) (*response.UserResponse, error)
}

type adminService struct {
	*core
}

func NewAdminService(c *core) AdminService {
	return &adminService{core: c}
}

func (s *adminService) ListProviders(ctx context.Context, req *request.ProviderListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.Status == "" {
		req.Status = string(entity.StatusPending)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	status := entity.ApprovalStatus(req.Status)

	users, err := s.repo.User.FindProviders(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list providers", zap.Error(err))
		return nil, fmt.Errorf("list providers: %w", err)
	}

	total, err := s.repo.User.CountProviders(ctx, status)
	if err != nil {
		s.log.Error("Failed to count providers", zap.Error(err))
		return nil, fmt.Errorf("count providers: %w", err)
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *adminService) Approve(ctx context.Context, providerID uuid.UUID) (*response.UserResponse, error) {
	return s.transition(ctx, providerID, entity.StatusApproved)
}

func (s *adminService) Reject(ctx context.Context, providerID uuid.UUID) (*response.UserResponse, error) {
	return s.transition(ctx, providerID, entity.StatusRejected)
}

// transition moves a provider to approved or rejected. Any state may move to
// either target; repeating the current state changes nothing.
func (s *adminService) transition(ctx context.Context, providerID uuid.UUID, to entity.ApprovalStatus) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, providerID)
	if err != nil {
		s.log.Error("Failed to find provider", zap.Error(err), zap.String("user_id", providerID.String()))
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "Provider not found")
	}
	if user.Role != entity.RoleProvider {
		return nil, newError(ErrValidation, "Only provider accounts can be approved or rejected")
	}

	if user.Status == to {
		resp := response.UserToResponse(user)
		return &resp, nil
	}

	if err := s.repo.User.UpdateStatus(ctx, user.ID, to); err != nil {
		s.log.Error("Failed to update provider status", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("update provider status: %w", err)
	}

	from := user.Status
	user.Status = to

	s.sendMail(ctx, "approval", mailer.ApprovalEmail(user.Email, displayName(user), string(to)))
	s.log.Info("Provider status changed",
		zap.String("user_id", user.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	resp := response.UserToResponse(user)
	return &resp, nil
}
