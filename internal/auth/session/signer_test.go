package session

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	token := signer.Sign(snowflake.ID(42), now.Add(time.Hour))

	userID, err := signer.Verify(token, now)
	assert.NoError(t, err)
	assert.Equal(t, snowflake.ID(42), userID)
}

func TestSignerRejectsExpiredToken(t *testing.T) {
	signer := NewSigner("test-secret")
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	token := signer.Sign(snowflake.ID(42), now.Add(-time.Minute))

	_, err := signer.Verify(token, now)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSignerRejectsTamperedToken(t *testing.T) {
	signer := NewSigner("test-secret")
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	token := signer.Sign(snowflake.ID(42), now.Add(time.Hour))
	tampered := "43" + token[2:]

	_, err := signer.Verify(tampered, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSignerRejectsForeignSecret(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := NewSigner("secret-a").Sign(snowflake.ID(7), now.Add(time.Hour))

	_, err := NewSigner("secret-b").Verify(token, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
