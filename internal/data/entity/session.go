package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session records an issued refresh token. Token holds the token's jti; a
// non-nil RevokedAt blacklists it.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
