package usecase

import (
	"context"
	"testing"
	"time"

	"hirehub/internal/data/entity"
	"hirehub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProviders(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, email := range []string{"p1@example.com", "p2@example.com", "p3@example.com"} {
		h.registerProvider(t, email)
		time.Sleep(time.Millisecond)
	}
	h.verifiedCustomer(t, "c@example.com")

	page, err := h.svc.Admin.ListProviders(ctx, &request.ProviderListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 2},
	})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, "p1@example.com", page.Data[0].Email)

	page, err = h.svc.Admin.ListProviders(ctx, &request.ProviderListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 2},
	})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	page, err = h.svc.Admin.ListProviders(ctx, &request.ProviderListRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	_, err = h.svc.Admin.ListProviders(ctx, &request.ProviderListRequest{Status: "banned"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveReject_Transitions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.registerProvider(t, "flow@example.com")
	mails := h.mail.count()

	resp, err := h.svc.Admin.Approve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, resp.Status)
	assert.Equal(t, entity.StatusApproved, h.store.user(id).Status)
	assert.Equal(t, mails+1, h.mail.count())
	assert.Contains(t, h.mail.last().Body, "approved")

	// same state twice is a no-op
	_, err = h.svc.Admin.Approve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, mails+1, h.mail.count())

	resp, err = h.svc.Admin.Reject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, resp.Status)
	assert.Contains(t, h.mail.last().Body, "rejected")

	resp, err = h.svc.Admin.Approve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, resp.Status)
}

func TestApprove_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	customer := h.verifiedCustomer(t, "cust@example.com")

	_, err := h.svc.Admin.Approve(ctx, customer)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.Admin.Reject(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
