package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

// Signer mints and verifies stateless session tokens of the form
// <user_id>.<expires_unix>.<signature>, signed with HMAC-SHA256.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Sign(userID snowflake.ID, expiresAt time.Time) string {
	payload := fmt.Sprintf("%s.%d", userID.String(), expiresAt.Unix())
	return payload + "." + s.signature(payload)
}

func (s *Signer) Verify(token string, now time.Time) (snowflake.ID, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return 0, ErrTokenInvalid
	}

	payload := parts[0] + "." + parts[1]
	expected := s.signature(payload)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return 0, ErrTokenInvalid
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	if now.After(time.Unix(expires, 0)) {
		return 0, ErrTokenExpired
	}

	userID, err := snowflake.ParseString(parts[0])
	if err != nil || userID == 0 {
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

func (s *Signer) signature(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
