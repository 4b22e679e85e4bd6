// Package otpstore keeps one-time verification codes in Redis.
//
// A code is stored under "otp:<email>" with the email lowercased, and
// expires after the store's TTL. Saving a new code for the same email
// replaces the previous one and restarts the TTL.
package otpstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/StricklySoft/jaunts-core/pkg/clients/redis"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// KV is the key/value API the store needs. [*redis.Client] satisfies it.
type KV interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

var _ KV = (*redis.Client)(nil)

// Codes stores verification codes.
type Codes struct {
	kv  KV
	ttl time.Duration
}

// New returns a code store over kv. ttl must be positive.
func New(kv KV, ttl time.Duration) (*Codes, error) {
	if ttl <= 0 {
		return nil, errors.New("otpstore: ttl must be positive")
	}
	return &Codes{kv: kv, ttl: ttl}, nil
}

// Key returns the key a code for email is stored under.
func Key(email string) string {
	return "otp:" + strings.ToLower(strings.TrimSpace(email))
}

// Save stores code for email.
func (s *Codes) Save(ctx context.Context, email, code string) error {
	return s.kv.Set(ctx, Key(email), code, s.ttl)
}

// Get returns the live code for email or [storage.ErrNotFound].
func (s *Codes) Get(ctx context.Context, email string) (string, error) {
	return s.kv.Get(ctx, Key(email))
}

// Remaining returns how long the code for email stays valid.
func (s *Codes) Remaining(ctx context.Context, email string) (time.Duration, error) {
	return s.kv.TTL(ctx, Key(email))
}

// Delete removes the code for email. A code that already expired is
// reported as [storage.ErrNotFound].
func (s *Codes) Delete(ctx context.Context, email string) error {
	n, err := s.kv.Del(ctx, Key(email))
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
