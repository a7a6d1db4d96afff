package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hirehub/internal/data/entity"
	"hirehub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindProviders(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]*entity.User, error)
	CountProviders(ctx context.Context, status entity.ApprovalStatus) (int64, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type userRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewUserRepository(db database.DBTX, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, username, password, role, is_verified, status,
		       is_active, is_staff, auth_provider, last_login_at,
		       created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.Status,
		&user.IsActive,
		&user.IsStaff,
		&user.AuthProvider,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. Unique violations surface as ErrDuplicateEmail or ErrDuplicateUsername.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, username, password, role, is_verified, status,
		                   is_active, is_staff, auth_provider, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.Status,
		user.IsActive,
		user.IsStaff,
		user.AuthProvider,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dup := translateUnique(err); dup != err {
			ur.log.Warn("Duplicate user", zap.String("email", user.Email), zap.Error(dup))
			return dup
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return user, nil
}

// FindProviders lists provider accounts with the given approval status, oldest first.
func (ur *userRepository) FindProviders(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = 'provider' AND status = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := ur.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		ur.log.Error("Failed to query providers", zap.Error(err), zap.String("status", string(status)))
		return nil, fmt.Errorf("find providers: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan provider row", zap.Error(err))
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountProviders(ctx context.Context, status entity.ApprovalStatus) (int64, error) {
	query := `
		SELECT COUNT(*) FROM users
		WHERE role = 'provider' AND status = $1 AND deleted_at IS NULL
	`

	var count int64
	if err := ur.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		ur.log.Error("Failed to count providers", zap.Error(err))
		return 0, fmt.Errorf("count providers: %w", err)
	}

	return count, nil
}

// MarkVerified sets the verification flag. Repeating it is harmless.
func (ur *userRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users SET is_verified = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	return ur.exec(ctx, "mark verified", id, query, id)
}

func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users SET password = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	return ur.exec(ctx, "update password", id, query, id, passwordHash)
}

func (ur *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) error {
	query := `
		UPDATE users SET status = $2, updated_at = NOW()
		WHERE id = $1 AND role = 'provider' AND deleted_at IS NULL
	`
	return ur.exec(ctx, "update status", id, query, id, status)
}

func (ur *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE users SET last_login_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	return ur.exec(ctx, "update last login", id, query, id, at)
}

// exec runs a single-row update and reports ErrNotFound when nothing matched.
func (ur *userRepository) exec(ctx context.Context, op string, id uuid.UUID, query string, args ...any) error {
	result, err := ur.db.Exec(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to "+op,
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("%s %s: %w", op, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
