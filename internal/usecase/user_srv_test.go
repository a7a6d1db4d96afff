package usecase

import (
	"context"
	"testing"

	"hirehub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func (h *harness) registerProvider(t *testing.T, email string) uuid.UUID {
	t.Helper()
	resp, err := h.svc.Auth.RegisterProvider(context.Background(), providerRequest(email))
	require.NoError(t, err)
	return uuid.MustParse(resp.User.ID)
}

func TestGetProfile(t *testing.T) {
	h := newHarness(t)
	id := h.verifiedCustomer(t, "me@example.com")

	resp, err := h.svc.User.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", resp.User.Email)
	assert.Equal(t, "customer", resp.Profile.Kind)
	require.NotNil(t, resp.Profile.Customer)
	assert.Nil(t, resp.Profile.Provider)
	assert.False(t, resp.ProfileComplete)

	_, err = h.svc.User.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteCustomerProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.verifiedCustomer(t, "cust@example.com")

	resp, err := h.svc.User.CompleteCustomerProfile(ctx, id, &request.CustomerProfileRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Customer.IsComplete)
	assert.Equal(t, "555-1234", *resp.Customer.Phone)

	complete, err := h.svc.User.IsProfileComplete(ctx, id)
	require.NoError(t, err)
	assert.True(t, complete)

	// editing after completion keeps the flag
	resp, err = h.svc.User.CompleteCustomerProfile(ctx, id, &request.CustomerProfileRequest{Location: strPtr("Shelbyville")})
	require.NoError(t, err)
	assert.True(t, resp.Customer.IsComplete)
	assert.Equal(t, "Shelbyville", *resp.Customer.Location)
	assert.Equal(t, "555-1234", *h.store.profile(id).Customer.Phone)
}

func TestCompleteCustomerProfile_RequiresPhone(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.verifiedCustomer(t, "nophone@example.com")

	h.store.mu.Lock()
	h.store.profiles[id].Customer.Phone = nil
	h.store.mu.Unlock()

	_, err := h.svc.User.CompleteCustomerProfile(ctx, id, &request.CustomerProfileRequest{Location: strPtr("Here")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, requiredField, fields(t, err)["phone"])

	_, err = h.svc.User.CompleteCustomerProfile(ctx, id, &request.CustomerProfileRequest{Phone: strPtr("not a number")})
	require.ErrorIs(t, err, ErrValidation)

	assert.False(t, h.store.profile(id).IsComplete())
}

func TestCompleteProviderProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.registerProvider(t, "prov@example.com")

	resp, err := h.svc.User.CompleteProviderProfile(ctx, id, &request.ProviderProfileRequest{HourlyRate: floatPtr(55)})
	require.NoError(t, err)
	assert.True(t, resp.Provider.IsComplete)
	assert.Equal(t, 55.0, *resp.Provider.HourlyRate)
	assert.Equal(t, "North", *resp.Provider.ServiceArea)
}

func TestCompleteProviderProfile_RequiredSet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.registerProvider(t, "gaps@example.com")

	h.store.mu.Lock()
	p := h.store.profiles[id].Provider
	p.Skills = nil
	p.HourlyRate = floatPtr(0)
	h.store.mu.Unlock()

	_, err := h.svc.User.CompleteProviderProfile(ctx, id, &request.ProviderProfileRequest{Location: strPtr("  ")})
	require.ErrorIs(t, err, ErrValidation)

	f := fields(t, err)
	assert.Equal(t, requiredField, f["skills"])
	assert.Equal(t, requiredField, f["location"])
	assert.Equal(t, "Must be greater than 0", f["hourly_rate"])
	assert.NotContains(t, f, "service_area")

	_, err = h.svc.User.CompleteProviderProfile(ctx, id, &request.ProviderProfileRequest{HourlyRate: floatPtr(-3)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompleteProfile_WrongRole(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.verifiedCustomer(t, "c@example.com")
	provider := h.registerProvider(t, "p@example.com")

	_, err := h.svc.User.CompleteProviderProfile(ctx, customer, &request.ProviderProfileRequest{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = h.svc.User.CompleteCustomerProfile(ctx, provider, &request.CustomerProfileRequest{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
