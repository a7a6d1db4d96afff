package usecase

import (
	"context"
	"fmt"

	"hirehub/internal/data/entity"
	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requiredField = "This field is required"

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.AccountResponse, error)
	IsProfileComplete(ctx context.Context, userID uuid.UUID) (bool, error)
	CompleteCustomerProfile(ctx context.Context, userID uuid.UUID, req *request.CustomerProfileRequest) (*response.ProfileResponse, error)
	CompleteProviderProfile(ctx context.Context, userID uuid.UUID, req *request.ProviderProfileRequest) (*response.ProfileResponse, error)
}

type userService struct {
	*core
}

func NewUserService(c *core) UserService {
	return &userService{core: c}
}

func (us *userService) load(ctx context.Context, userID uuid.UUID) (*entity.User, entity.Profile, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, entity.Profile{}, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, entity.Profile{}, newError(ErrNotFound, "User not found")
	}

	profile, err := us.repo.Profile.FindByUser(ctx, user.ID, user.Role)
	if err != nil {
		us.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, entity.Profile{}, fmt.Errorf("find profile: %w", err)
	}

	return user, profile, nil
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.AccountResponse, error) {
	user, profile, err := us.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &response.AccountResponse{
		User:            response.UserToResponse(user),
		Profile:         response.ProfileToResponse(profile),
		ProfileComplete: profile.Matches(user.Role) && profile.IsComplete(),
	}, nil
}

// IsProfileComplete is true iff the profile matching the account's role is marked complete.
func (us *userService) IsProfileComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, profile, err := us.load(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.Matches(user.Role) && profile.IsComplete(), nil
}

// loadFor returns the caller's profile, requiring it to be of the given role.
func (us *userService) loadFor(ctx context.Context, userID uuid.UUID, role entity.UserRole) (entity.Profile, error) {
	user, profile, err := us.load(ctx, userID)
	if err != nil {
		return entity.Profile{}, err
	}
	if user.Role != role {
		return entity.Profile{}, newError(ErrPermissionDenied, fmt.Sprintf("Only %s accounts have a %s profile", role, role))
	}
	if !profile.Matches(role) {
		return entity.Profile{}, newError(ErrNotFound, "Profile not found")
	}
	return profile, nil
}

// CompleteCustomerProfile merges the supplied fields, requires a phone
// number on the result and marks the profile complete.
func (us *userService) CompleteCustomerProfile(ctx context.Context, userID uuid.UUID, req *request.CustomerProfileRequest) (*response.ProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	profile, err := us.loadFor(ctx, userID, entity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	p := *profile.Customer
	if req.Phone != nil {
		p.Phone = trimmed(req.Phone)
	}
	if req.Location != nil {
		p.Location = trimmed(req.Location)
	}

	if p.Phone == nil {
		return nil, fieldError("phone", requiredField)
	}
	if !utils.IsValidPhone(*p.Phone) {
		return nil, fieldError("phone", "Invalid phone number")
	}

	p.IsComplete = true
	p.UpdatedAt = us.now()

	return us.save(ctx, userID, entity.NewCustomerProfile(&p))
}

// CompleteProviderProfile merges the supplied fields and requires skills,
// service area, a positive hourly rate and location on the result.
func (us *userService) CompleteProviderProfile(ctx context.Context, userID uuid.UUID, req *request.ProviderProfileRequest) (*response.ProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	profile, err := us.loadFor(ctx, userID, entity.RoleProvider)
	if err != nil {
		return nil, err
	}

	p := *profile.Provider
	if req.Skills != nil {
		p.Skills = trimmed(req.Skills)
	}
	if req.ServiceArea != nil {
		p.ServiceArea = trimmed(req.ServiceArea)
	}
	if req.HourlyRate != nil {
		rate := *req.HourlyRate
		p.HourlyRate = &rate
	}
	if req.Location != nil {
		p.Location = trimmed(req.Location)
	}

	missing := map[string]string{}
	if p.Skills == nil {
		missing["skills"] = requiredField
	}
	if p.ServiceArea == nil {
		missing["service_area"] = requiredField
	}
	if p.HourlyRate == nil {
		missing["hourly_rate"] = requiredField
	} else if *p.HourlyRate <= 0 {
		missing["hourly_rate"] = "Must be greater than 0"
	}
	if p.Location == nil {
		missing["location"] = requiredField
	}
	if len(missing) > 0 {
		return nil, validationError(missing)
	}

	p.IsComplete = true
	p.UpdatedAt = us.now()

	return us.save(ctx, userID, entity.NewProviderProfile(&p))
}

func (us *userService) save(ctx context.Context, userID uuid.UUID, profile entity.Profile) (*response.ProfileResponse, error) {
	if err := us.repo.Profile.Update(ctx, profile); err != nil {
		us.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	us.log.Info("Profile completed",
		zap.String("user_id", userID.String()),
		zap.String("kind", profile.Kind.String()))

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}
