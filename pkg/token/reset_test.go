package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetToken_Valid(t *testing.T) {
	g := NewResetTokenGenerator("secret", 72*time.Hour)
	state := ResetState{UserID: uuid.New(), PasswordHash: "hash-1"}

	tok := g.Make(state)
	assert.True(t, g.Check(state, tok))
}

func TestResetToken_InvalidAfterPasswordChange(t *testing.T) {
	g := NewResetTokenGenerator("secret", 72*time.Hour)
	state := ResetState{UserID: uuid.New(), PasswordHash: "hash-1"}
	tok := g.Make(state)

	state.PasswordHash = "hash-2"
	assert.False(t, g.Check(state, tok))
}

func TestResetToken_InvalidAfterLogin(t *testing.T) {
	g := NewResetTokenGenerator("secret", 72*time.Hour)
	state := ResetState{UserID: uuid.New(), PasswordHash: "hash-1"}
	tok := g.Make(state)

	now := time.Now()
	state.LastLoginAt = &now
	assert.False(t, g.Check(state, tok))
}

func TestResetToken_OtherAccount(t *testing.T) {
	g := NewResetTokenGenerator("secret", 72*time.Hour)
	tok := g.Make(ResetState{UserID: uuid.New(), PasswordHash: "hash"})

	assert.False(t, g.Check(ResetState{UserID: uuid.New(), PasswordHash: "hash"}, tok))
}

func TestResetToken_Expired(t *testing.T) {
	issued := time.Now().Add(-73 * time.Hour)
	g := NewResetTokenGenerator("secret", 72*time.Hour)
	state := ResetState{UserID: uuid.New(), PasswordHash: "hash"}

	tok := g.WithClock(func() time.Time { return issued }).Make(state)
	assert.False(t, g.Check(state, tok))
}

func TestResetToken_Malformed(t *testing.T) {
	g := NewResetTokenGenerator("secret", time.Hour)
	state := ResetState{UserID: uuid.New(), PasswordHash: "hash"}

	for _, tok := range []string{"", "-", "abc", "zz-", "-deadbeef", "!!-deadbeef"} {
		assert.False(t, g.Check(state, tok), tok)
	}
}

func TestUID_RoundTrip(t *testing.T) {
	id := uuid.New()
	encoded := EncodeUID(id)

	assert.NotContains(t, encoded, "=")

	decoded, err := DecodeUID(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	_, err = DecodeUID("%%%")
	assert.Error(t, err)

	_, err = DecodeUID(EncodeUID(uuid.Nil)[:10])
	assert.Error(t, err)
}
