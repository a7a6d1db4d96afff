package usecase

import (
	"context"
	"testing"

	"hirehub/internal/data/entity"
	"hirehub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderJourney(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	creds := &request.LoginRequest{Email: "builder@example.com", Password: "secret123"}

	reg, err := h.svc.Auth.RegisterProvider(ctx, providerRequest(creds.Email))
	require.NoError(t, err)
	id := uuid.MustParse(reg.User.ID)

	user := h.store.user(id)
	assert.Equal(t, entity.StatusPending, user.Status)
	assert.False(t, user.IsVerified)

	require.NoError(t, h.svc.Auth.VerifyEmail(ctx, h.verificationToken(t)))
	assert.True(t, h.store.user(id).IsVerified)

	_, err = h.svc.Auth.Login(ctx, creds, request.ClientInfo{})
	require.ErrorIs(t, err, ErrApprovalPending)

	_, err = h.svc.Admin.Approve(ctx, id)
	require.NoError(t, err)

	login, err := h.svc.Auth.Login(ctx, creds, request.ClientInfo{})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Access)
	assert.NotEmpty(t, login.Refresh)
	assert.False(t, login.ProfileComplete)
	assert.Equal(t, "/complete-provider-profile/", login.RedirectURL)

	_, err = h.svc.User.CompleteProviderProfile(ctx, id, &request.ProviderProfileRequest{
		Skills:      strPtr("carpentry"),
		ServiceArea: strPtr("Downtown"),
		HourlyRate:  floatPtr(60),
		Location:    strPtr("Springfield"),
	})
	require.NoError(t, err)

	complete, err := h.svc.User.IsProfileComplete(ctx, id)
	require.NoError(t, err)
	assert.True(t, complete)

	login, err = h.svc.Auth.Login(ctx, creds, request.ClientInfo{})
	require.NoError(t, err)
	assert.True(t, login.ProfileComplete)
	assert.Equal(t, "/dashboard/", login.RedirectURL)
}

func TestProviderJourney_Rejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	reg, err := h.svc.Auth.RegisterProvider(ctx, providerRequest("nope@example.com"))
	require.NoError(t, err)
	require.NoError(t, h.svc.Auth.VerifyEmail(ctx, h.verificationToken(t)))

	_, err = h.svc.Admin.Reject(ctx, uuid.MustParse(reg.User.ID))
	require.NoError(t, err)

	_, err = h.svc.Auth.Login(ctx, &request.LoginRequest{Email: "nope@example.com", Password: "secret123"}, request.ClientInfo{})
	assert.ErrorIs(t, err, ErrApprovalRejected)
}

func TestCustomerJourney(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	reg, err := h.svc.Auth.RegisterCustomer(ctx, &request.RegisterCustomerRequest{
		Email:    "homer@example.com",
		Password: "secret123",
		Phone:    "555-1234",
		Location: strPtr("Springfield"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(reg.User.ID)

	profile := h.store.profile(id)
	require.Equal(t, entity.CustomerKind, profile.Kind)
	assert.False(t, profile.IsComplete())

	require.NoError(t, h.svc.Auth.VerifyEmail(ctx, h.verificationToken(t)))

	login, err := h.svc.Auth.Login(ctx, &request.LoginRequest{Email: "homer@example.com", Password: "secret123"}, request.ClientInfo{})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Access)
	assert.Equal(t, entity.RoleCustomer, login.Role)
	assert.Equal(t, "/complete-customer-profile/", login.RedirectURL)
}
