package adaptor

import (
	"context"

	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) RegisterCustomer(ctx context.Context, req *request.RegisterCustomerRequest) (*response.RegisterResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.RegisterResponse)
	return resp, args.Error(1)
}

func (m *mockAuth) RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) (*response.RegisterResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.RegisterResponse)
	return resp, args.Error(1)
}

func (m *mockAuth) VerifyEmail(ctx context.Context, rawToken string) error {
	return m.Called(ctx, rawToken).Error(0)
}

func (m *mockAuth) Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*response.LoginResponse, error) {
	args := m.Called(ctx, req, client)
	resp, _ := args.Get(0).(*response.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	return m.Called(ctx, userID, refreshToken).Error(0)
}

func (m *mockAuth) Refresh(ctx context.Context, refreshToken string, client request.ClientInfo) (*response.TokenPair, error) {
	args := m.Called(ctx, refreshToken, client)
	resp, _ := args.Get(0).(*response.TokenPair)
	return resp, args.Error(1)
}

type mockPassword struct{ mock.Mock }

func (m *mockPassword) RequestReset(ctx context.Context, req *request.ResetEmailRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockPassword) CheckResetToken(ctx context.Context, uidb64, resetToken string) (*response.ResetCheckResponse, error) {
	args := m.Called(ctx, uidb64, resetToken)
	resp, _ := args.Get(0).(*response.ResetCheckResponse)
	return resp, args.Error(1)
}

func (m *mockPassword) SetNewPassword(ctx context.Context, req *request.SetNewPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockUser struct{ mock.Mock }

func (m *mockUser) GetProfile(ctx context.Context, userID uuid.UUID) (*response.AccountResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*response.AccountResponse)
	return resp, args.Error(1)
}

func (m *mockUser) IsProfileComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUser) CompleteCustomerProfile(ctx context.Context, userID uuid.UUID, req *request.CustomerProfileRequest) (*response.ProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.ProfileResponse)
	return resp, args.Error(1)
}

func (m *mockUser) CompleteProviderProfile(ctx context.Context, userID uuid.UUID, req *request.ProviderProfileRequest) (*response.ProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.ProfileResponse)
	return resp, args.Error(1)
}

type mockAdmin struct{ mock.Mock }

func (m *mockAdmin) ListProviders(ctx context.Context, req *request.ProviderListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.UserResponse])
	return resp, args.Error(1)
}

func (m *mockAdmin) Approve(ctx context.Context, providerID uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, providerID)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockAdmin) Reject(ctx context.Context, providerID uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, providerID)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

type mockSocial struct{ mock.Mock }

func (m *mockSocial) Login(ctx context.Context, provider string, req *request.SocialLoginRequest, client request.ClientInfo) (*response.LoginResponse, error) {
	args := m.Called(ctx, provider, req, client)
	resp, _ := args.Get(0).(*response.LoginResponse)
	return resp, args.Error(1)
}
