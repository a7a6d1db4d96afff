package token

import (
	"errors"
	"fmt"
	"time"

	"hirehub/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess       Type = "access"
	TypeRefresh      Type = "refresh"
	TypeVerification Type = "email_verification"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"`
	TokenType Type   `json:"token_type"`
	jwt.RegisteredClaims
}

// UserUUID parses the user_id claim.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TokenID parses the jti claim.
func (c *Claims) TokenID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}

// Issued is a signed token together with its identifier and expiry.
type Issued struct {
	Token     string
	ID        uuid.UUID
	ExpiresAt time.Time
}

// Manager signs and verifies HS256 tokens. Each token carries a token_type
// claim so one kind can never be accepted in place of another.
type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
	now        func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(config utils.JWTConfig, opts ...Option) *Manager {
	m := &Manager{
		secret:     []byte(config.Secret),
		issuer:     config.Issuer,
		accessTTL:  config.AccessTTL,
		refreshTTL: config.RefreshTTL,
		verifyTTL:  config.VerifyTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) IssueAccess(userID uuid.UUID, role string) (Issued, error) {
	return m.issue(userID, role, TypeAccess, m.accessTTL)
}

func (m *Manager) IssueRefresh(userID uuid.UUID, role string) (Issued, error) {
	return m.issue(userID, role, TypeRefresh, m.refreshTTL)
}

func (m *Manager) IssueVerification(userID uuid.UUID) (Issued, error) {
	return m.issue(userID, "", TypeVerification, m.verifyTTL)
}

func (m *Manager) issue(userID uuid.UUID, role string, typ Type, ttl time.Duration) (Issued, error) {
	now := m.now()
	id := uuid.New()
	exp := now.Add(ttl)

	claims := &Claims{
		UserID:    userID.String(),
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			Issuer:    m.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("sign %s token: %w", typ, err)
	}

	return Issued{Token: signed, ID: id, ExpiresAt: exp}, nil
}

// Parse verifies raw and checks that it is of type want. Expiry is reported
// as ErrTokenExpired, every other failure as ErrTokenInvalid.
func (m *Manager) Parse(raw string, want Type) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := &Claims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid || claims.TokenType != want {
		return nil, ErrTokenInvalid
	}
	if _, err := claims.UserUUID(); err != nil {
		return nil, ErrTokenInvalid
	}
	if _, err := claims.TokenID(); err != nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
