package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hirehub/internal/data/entity"
	"hirehub/internal/data/repository"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
)

type adminInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=68,bcryptlen"`
}

// CreateAdmin creates a verified staff account with an empty customer profile.
func CreateAdmin(ctx context.Context, repo *repository.Repository, bcryptCost int, email, password string) (*entity.User, error) {
	in := adminInput{Email: strings.ToLower(strings.TrimSpace(email)), Password: password}
	if errs := utils.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("invalid admin account: %s", utils.FormatValidationErrors(errs))
	}

	hash, err := utils.HashPassword(in.Password, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        in.Email,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		IsVerified:   true,
		Status:       entity.StatusApproved,
		IsActive:     true,
		IsStaff:      true,
		AuthProvider: entity.AuthProviderEmail,
	}

	err = repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		return tx.Profile.Create(ctx, entity.EmptyProfileFor(user.ID, user.Role, now))
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, fmt.Errorf("account %s already exists", in.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	return user, nil
}
