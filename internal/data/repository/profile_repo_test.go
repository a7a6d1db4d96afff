package repository

import (
	"context"
	"testing"
	"time"

	"hirehub/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileRepository_CreateCustomer(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock, zap.NewNop())

	profile := entity.EmptyProfileFor(uuid.New(), entity.RoleCustomer, time.Now())
	p := profile.Customer

	mock.ExpectExec("INSERT INTO customer_profiles").
		WithArgs(p.ID, p.UserID, p.Phone, p.Location, false, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), profile))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_CreateRejectsNoProfile(t *testing.T) {
	repo := NewProfileRepository(newMock(t), zap.NewNop())
	assert.Error(t, repo.Create(context.Background(), entity.Profile{}))
}

func TestProfileRepository_FindProvider(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock, zap.NewNop())

	userID := uuid.New()
	now := time.Now()
	skills, area, location := "plumbing", "Springfield", "Springfield"
	rate := 45.5

	mock.ExpectQuery("FROM provider_profiles").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "skills", "service_area", "hourly_rate", "location",
			"is_complete", "created_at", "updated_at",
		}).AddRow(uuid.New(), userID, &skills, &area, &rate, &location, true, now, now))

	profile, err := repo.FindByUser(context.Background(), userID, entity.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderKind, profile.Kind)
	assert.True(t, profile.IsComplete())
	assert.Equal(t, 45.5, *profile.Provider.HourlyRate)
}

func TestProfileRepository_FindMissingIsNoProfile(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectQuery("FROM customer_profiles").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "phone", "location", "is_complete", "created_at", "updated_at",
		}))

	profile, err := repo.FindByUser(context.Background(), userID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, entity.NoProfile, profile.Kind)
}

func TestProfileRepository_UpdateMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock, zap.NewNop())

	profile := entity.EmptyProfileFor(uuid.New(), entity.RoleProvider, time.Now())
	p := profile.Provider

	mock.ExpectExec("UPDATE provider_profiles").
		WithArgs(p.UserID, p.Skills, p.ServiceArea, p.HourlyRate, p.Location, p.IsComplete, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.Update(context.Background(), profile), ErrNotFound)
}
