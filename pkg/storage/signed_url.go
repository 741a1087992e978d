package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenInvalid = errors.New("invalid download token")
	ErrTokenExpired = errors.New("download token expired")
)

// SignedURLSigner creates and validates signed download tokens.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SignedURLSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a token binding resourceID and relPath until the TTL elapses.
func (s *SignedURLSigner) Generate(resourceID, relPath string) (string, time.Time, error) {
	if resourceID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("resource id and path required")
	}
	if strings.Contains(resourceID, ".") {
		return "", time.Time{}, fmt.Errorf("resource id must not contain '.'")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	token := strings.Join([]string{resourceID, ts, encodedPath, s.sign(resourceID, ts, encodedPath)}, ".")
	return token, expiresAt, nil
}

// Parse validates a token and returns the embedded resource id and path.
// When allowExpired is true, the expiry check is skipped.
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (resourceID, relPath string, expiresAt time.Time, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	resourceID, ts, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.sign(resourceID, ts, encodedPath)), []byte(signature)) {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	expiresAt = time.Unix(expUnix, 0)
	if !allowExpired && s.now().After(expiresAt) {
		return "", "", time.Time{}, ErrTokenExpired
	}
	return resourceID, string(rawPath), expiresAt, nil
}

func (s *SignedURLSigner) sign(resourceID, ts, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(resourceID + "|" + ts + "|" + encodedPath))
	return hex.EncodeToString(mac.Sum(nil))
}
