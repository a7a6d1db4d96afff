package repository

import (
	"context"
	"fmt"

	"hirehub/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Profile ProfileRepository
	Session SessionRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositories(db, log)
	repo.db = db
	return repo
}

func newRepositories(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Profile: NewProfileRepository(db, log),
		Session: NewSessionRepository(db, log),
		log:     log,
	}
}

// WithTx runs fn against repositories bound to a single transaction, committing
// when fn returns nil. A Repository assembled without a pool (tests wire
// in-memory stores this way) runs fn on itself.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepositories(tx, r.log)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ping reports whether the backing database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.Ping(ctx)
}
