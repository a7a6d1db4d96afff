package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hirehub/internal/data/entity"
	"hirehub/internal/data/repository"
	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/pkg/token"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	RegisterCustomer(ctx context.Context, req *request.RegisterCustomerRequest) (*response.RegisterResponse, error)
	RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) (*response.RegisterResponse, error)
	VerifyEmail(ctx context.Context, rawToken string) error
	Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*response.LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string, client request.ClientInfo) (*response.TokenPair, error)
}

type authService struct {
	*core
}

func NewAuthService(c *core) AuthService {
	return &authService{core: c}
}

func (s *authService) RegisterCustomer(ctx context.Context, req *request.RegisterCustomerRequest) (*response.RegisterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register customer validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.newAccount(req.Email, req.Username, req.Password, entity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	profile := entity.EmptyProfileFor(user.ID, entity.RoleCustomer, user.CreatedAt)
	profile.Customer.Phone = trimmed(&req.Phone)
	profile.Customer.Location = trimmed(req.Location)

	return s.register(ctx, user, profile)
}

func (s *authService) RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) (*response.RegisterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register provider validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.newAccount(req.Email, req.Username, req.Password, entity.RoleProvider)
	if err != nil {
		return nil, err
	}

	rate := req.HourlyRate
	profile := entity.EmptyProfileFor(user.ID, entity.RoleProvider, user.CreatedAt)
	profile.Provider.Skills = trimmed(&req.Skills)
	profile.Provider.ServiceArea = trimmed(&req.ServiceArea)
	profile.Provider.HourlyRate = &rate
	profile.Provider.Location = trimmed(&req.Location)

	return s.register(ctx, user, profile)
}

// newAccount builds an unverified email account. Providers start pending,
// customers need no approval.
func (s *authService) newAccount(email string, username *string, password string, role entity.UserRole) (*entity.User, error) {
	hashedPassword, err := utils.HashPassword(password, s.config.JWT.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	status := entity.StatusApproved
	if role == entity.RoleProvider {
		status = entity.StatusPending
	}

	now := s.now()
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        normalizeEmail(email),
		Username:     trimmed(username),
		PasswordHash: hashedPassword,
		Role:         role,
		IsVerified:   false,
		Status:       status,
		IsActive:     true,
		AuthProvider: entity.AuthProviderEmail,
	}, nil
}

// register stores the account and its profile together, then sends the
// verification link.
func (s *authService) register(ctx context.Context, user *entity.User, profile entity.Profile) (*response.RegisterResponse, error) {
	existing, err := s.repo.User.FindByEmail(ctx, user.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fieldError("email", "user with this email already exists.")
	}

	if user.Username != nil {
		existing, err = s.repo.User.FindByUsername(ctx, *user.Username)
		if err != nil {
			s.log.Error("Failed to check username", zap.Error(err))
			return nil, fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			return nil, fieldError("username", "user with this username already exists.")
		}
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		return tx.Profile.Create(ctx, profile)
	})
	if err != nil {
		// lost a race with a concurrent registration
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, fieldError("email", "user with this email already exists.")
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, fieldError("username", "user with this username already exists.")
		}
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.sendVerification(ctx, user)
	s.metrics.Registered(string(user.Role), string(user.AuthProvider))

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &response.RegisterResponse{
		User:    response.UserToResponse(user),
		Message: "User registered successfully. Check your email to verify your account.",
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return fieldError("token", "Token is required")
	}

	claims, err := s.tokens.Parse(rawToken, token.TypeVerification)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return newError(ErrTokenExpired, "Activation link expired")
		}
		return newError(ErrTokenInvalid, "Invalid token")
	}

	userID, _ := claims.UserUUID()
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for verification", zap.Error(err))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return newError(ErrNotFound, "User not found")
	}

	if user.IsVerified {
		return nil
	}

	if err := s.repo.User.MarkVerified(ctx, user.ID); err != nil {
		s.log.Error("Failed to mark user verified", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("mark verified: %w", err)
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// unknown email and wrong password look the same to the caller
	if user == nil {
		utils.CheckPasswordHash(req.Password, s.decoyHash())
		s.metrics.Login("invalid_credentials")
		return nil, newError(ErrAuthenticationFailed, "Invalid credentials, try again")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.metrics.Login("invalid_credentials")
		return nil, newError(ErrAuthenticationFailed, "Invalid credentials, try again")
	}

	if !user.IsActive {
		s.metrics.Login("inactive")
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrAuthenticationFailed, "Account disabled, contact admin")
	}

	if err := checkLoginGate(user); err != nil {
		s.metrics.Login("gated")
		s.log.Warn("Login blocked", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}

	resp, err := s.finishLogin(ctx, user, client)
	if err != nil {
		return nil, err
	}

	s.metrics.Login("success")
	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	claims, err := s.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return newError(ErrTokenInvalid, "Token is invalid or expired")
	}

	owner, _ := claims.UserUUID()
	if owner != userID {
		s.log.Warn("Logout with another user's refresh token", zap.String("user_id", userID.String()))
		return newError(ErrTokenInvalid, "Token is invalid or expired")
	}

	jti, _ := claims.TokenID()
	if err := s.repo.Session.Revoke(ctx, jti); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return newError(ErrTokenInvalid, "Token is blacklisted")
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.metrics.Session("revoked", 1)
	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued in the same transaction.
func (s *authService) Refresh(ctx context.Context, refreshToken string, client request.ClientInfo) (*response.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, newError(ErrTokenInvalid, "Token is invalid or expired")
	}

	userID, _ := claims.UserUUID()
	jti, _ := claims.TokenID()

	var pair response.TokenPair
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Session.Revoke(ctx, jti); err != nil {
			return err
		}

		user, err := tx.User.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil || !user.IsActive {
			return newError(ErrTokenInvalid, "Token is invalid or expired")
		}

		pair, err = s.issuePair(ctx, tx.Session, user, client)
		return err
	})
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, newError(ErrTokenInvalid, "Token is blacklisted")
		}
		s.log.Error("Failed to rotate refresh token", zap.Error(err))
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	s.metrics.Session("rotated", 1)
	return &pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trimmed returns nil for missing or blank values.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
