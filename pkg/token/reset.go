package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const resetSalt = "hirehub.password-reset"

// resetEpoch keeps the timestamp part of reset tokens short.
var resetEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// ResetState is the account state a reset token is bound to. Changing the
// password hash or logging in again invalidates every outstanding token.
type ResetState struct {
	UserID       uuid.UUID
	PasswordHash string
	LastLoginAt  *time.Time
}

// ResetTokenGenerator mints stateless one-time password reset tokens of the
// form "<base36 timestamp>-<hex hmac>".
type ResetTokenGenerator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewResetTokenGenerator(secret string, ttl time.Duration) *ResetTokenGenerator {
	return &ResetTokenGenerator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of g using now as its time source.
func (g *ResetTokenGenerator) WithClock(now func() time.Time) *ResetTokenGenerator {
	cp := *g
	cp.now = now
	return &cp
}

func (g *ResetTokenGenerator) Make(state ResetState) string {
	ts := int64(g.now().Sub(resetEpoch) / time.Second)
	return g.makeWithTimestamp(state, ts)
}

func (g *ResetTokenGenerator) Check(state ResetState, token string) bool {
	tsPart, sig, ok := strings.Cut(token, "-")
	if !ok || tsPart == "" || sig == "" {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil || ts < 0 {
		return false
	}

	expected := g.makeWithTimestamp(state, ts)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return false
	}

	age := g.now().Sub(resetEpoch.Add(time.Duration(ts) * time.Second))
	return age <= g.ttl
}

func (g *ResetTokenGenerator) makeWithTimestamp(state ResetState, ts int64) string {
	lastLogin := ""
	if state.LastLoginAt != nil {
		lastLogin = strconv.FormatInt(state.LastLoginAt.UTC().Unix(), 10)
	}

	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%s|%s|%s|%d", resetSalt, state.UserID, state.PasswordHash, lastLogin, ts)
	sum := mac.Sum(nil)

	return strconv.FormatInt(ts, 36) + "-" + hex.EncodeToString(sum[:20])
}

// EncodeUID renders an account id for use in reset links.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

// DecodeUID reverses EncodeUID. Padded input is accepted too.
func DecodeUID(encoded string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode uid: %w", err)
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode uid: %w", err)
	}
	return id, nil
}
