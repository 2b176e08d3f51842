// Package tracking issues and verifies click-through tokens.
//
// A token carries the platform name and destination URL of a comparison
// result, encrypted and signed with fernet. The click endpoint only redirects
// to destinations it issued itself, so it cannot be used as an open redirect.
package tracking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
)

// Target is the payload of a click-through token.
type Target struct {
	PlatformName string `json:"p"`
	URL          string `json:"u"`
}

// Signer creates and checks click-through tokens.
type Signer struct {
	key *fernet.Key
	ttl time.Duration
}

// NewSigner creates a Signer from a base64 fernet key.
// An empty key generates a random one; tokens then stop verifying after a restart.
// The boolean reports whether the key was generated.
func NewSigner(encodedKey string, ttl time.Duration) (*Signer, bool, error) {
	if ttl <= 0 {
		return nil, false, fmt.Errorf("tracking token TTL must be positive")
	}

	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, false, fmt.Errorf("failed to generate tracking key: %w", err)
		}
		return &Signer{key: &key, ttl: ttl}, true, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode tracking key: %w", err)
	}
	return &Signer{key: key, ttl: ttl}, false, nil
}

// Issue returns a URL-safe token for target.
func (s *Signer) Issue(target Target) (string, error) {
	payload, err := json.Marshal(target)
	if err != nil {
		return "", fmt.Errorf("failed to encode tracking target: %w", err)
	}
	token, err := fernet.EncryptAndSign(payload, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign tracking token: %w", err)
	}
	return string(token), nil
}

// Verify decodes token and returns its target.
// Tampered, foreign or expired tokens return apperrors.ErrInvalidToken.
func (s *Signer) Verify(token string) (Target, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return Target{}, apperrors.ErrInvalidToken
	}

	var target Target
	if err := json.Unmarshal(payload, &target); err != nil {
		return Target{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if target.PlatformName == "" || target.URL == "" {
		return Target{}, apperrors.ErrInvalidToken
	}
	return target, nil
}
