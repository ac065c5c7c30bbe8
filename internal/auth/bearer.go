package auth

import (
	"crypto/subtle"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerToken is the single static credential accepted by the feed.
// In production this would typically come from IAM/JWT/Secret Manager.
type BearerToken struct {
	expected string
}

// NewBearerToken returns a checker for "Bearer <token>". An empty token
// rejects every request.
func NewBearerToken(token string) BearerToken {
	token = strings.TrimSpace(token)
	if token == "" {
		return BearerToken{}
	}
	return BearerToken{expected: bearerPrefix + token}
}

// Verify reports whether header is exactly "Bearer <token>".
func (b BearerToken) Verify(header string) bool {
	if b.expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), []byte(b.expected)) == 1
}
