package repository

import (
	"context"
	"errors"
	"fmt"

	"hirehub/internal/data/entity"
	"hirehub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile entity.Profile) error
	FindByUser(ctx context.Context, userID uuid.UUID, role entity.UserRole) (entity.Profile, error)
	Update(ctx context.Context, profile entity.Profile) error
}

type profileRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewProfileRepository(db database.DBTX, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

func (r *profileRepository) Create(ctx context.Context, profile entity.Profile) error {
	switch profile.Kind {
	case entity.CustomerKind:
		p := profile.Customer
		query := `
			INSERT INTO customer_profiles (id, user_id, phone, location, is_complete,
			                               created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := r.db.Exec(ctx, query,
			p.ID, p.UserID, p.Phone, p.Location, p.IsComplete, p.CreatedAt, p.UpdatedAt)
		return r.wrap(err, "create customer profile", p.UserID)

	case entity.ProviderKind:
		p := profile.Provider
		query := `
			INSERT INTO provider_profiles (id, user_id, skills, service_area, hourly_rate,
			                               location, is_complete, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := r.db.Exec(ctx, query,
			p.ID, p.UserID, p.Skills, p.ServiceArea, p.HourlyRate, p.Location,
			p.IsComplete, p.CreatedAt, p.UpdatedAt)
		return r.wrap(err, "create provider profile", p.UserID)
	}

	return fmt.Errorf("create profile: unsupported kind %s", profile.Kind)
}

// FindByUser returns the profile of the variant matching role, or a NoProfile value when absent.
func (r *profileRepository) FindByUser(ctx context.Context, userID uuid.UUID, role entity.UserRole) (entity.Profile, error) {
	switch role {
	case entity.RoleCustomer:
		query := `
			SELECT id, user_id, phone, location, is_complete, created_at, updated_at
			FROM customer_profiles
			WHERE user_id = $1
		`
		var p entity.CustomerProfile
		err := r.db.QueryRow(ctx, query, userID).Scan(
			&p.ID, &p.UserID, &p.Phone, &p.Location, &p.IsComplete, &p.CreatedAt, &p.UpdatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Profile{}, nil
		}
		if err != nil {
			return entity.Profile{}, r.wrap(err, "find customer profile", userID)
		}
		return entity.NewCustomerProfile(&p), nil

	case entity.RoleProvider:
		query := `
			SELECT id, user_id, skills, service_area, hourly_rate, location, is_complete,
			       created_at, updated_at
			FROM provider_profiles
			WHERE user_id = $1
		`
		var p entity.ProviderProfile
		err := r.db.QueryRow(ctx, query, userID).Scan(
			&p.ID, &p.UserID, &p.Skills, &p.ServiceArea, &p.HourlyRate, &p.Location,
			&p.IsComplete, &p.CreatedAt, &p.UpdatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Profile{}, nil
		}
		if err != nil {
			return entity.Profile{}, r.wrap(err, "find provider profile", userID)
		}
		return entity.NewProviderProfile(&p), nil
	}

	return entity.Profile{}, nil
}

func (r *profileRepository) Update(ctx context.Context, profile entity.Profile) error {
	var (
		userID uuid.UUID
		query  string
		args   []any
	)

	switch profile.Kind {
	case entity.CustomerKind:
		p := profile.Customer
		userID = p.UserID
		query = `
			UPDATE customer_profiles
			SET phone = $2, location = $3, is_complete = $4, updated_at = $5
			WHERE user_id = $1
		`
		args = []any{p.UserID, p.Phone, p.Location, p.IsComplete, p.UpdatedAt}

	case entity.ProviderKind:
		p := profile.Provider
		userID = p.UserID
		query = `
			UPDATE provider_profiles
			SET skills = $2, service_area = $3, hourly_rate = $4, location = $5,
			    is_complete = $6, updated_at = $7
			WHERE user_id = $1
		`
		args = []any{p.UserID, p.Skills, p.ServiceArea, p.HourlyRate, p.Location, p.IsComplete, p.UpdatedAt}

	default:
		return fmt.Errorf("update profile: unsupported kind %s", profile.Kind)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return r.wrap(err, "update "+profile.Kind.String()+" profile", userID)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *profileRepository) wrap(err error, op string, userID uuid.UUID) error {
	if err == nil {
		return nil
	}
	r.log.Error("Failed to "+op, zap.Error(err), zap.String("user_id", userID.String()))
	return fmt.Errorf("%s %s: %w", op, userID.String(), err)
}
