package cache

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore holds short-lived password reset codes keyed by email.
// A code must be verified before the password can be reset; verification
// leaves a marker with its own TTL so the reset step can be a separate request.
type OTPStore interface {
	// Put stores a code for the email, replacing any previous one
	Put(ctx context.Context, email, code string, ttl time.Duration) error

	// Verify compares the stored code and, on match, consumes it and
	// marks the email as verified for verifiedTTL
	Verify(ctx context.Context, email, code string, verifiedTTL time.Duration) (bool, error)

	// ConsumeVerified checks and clears the verified marker for the email
	ConsumeVerified(ctx context.Context, email string) (bool, error)
}

// RedisOTPStore implements OTPStore using Redis
type RedisOTPStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisOTPStore creates an OTP store on an existing Redis client
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{
		client:    client,
		keyPrefix: "otp:reset:",
	}
}

func (s *RedisOTPStore) codeKey(email string) string {
	return s.keyPrefix + "code:" + email
}

func (s *RedisOTPStore) verifiedKey(email string) string {
	return s.keyPrefix + "verified:" + email
}

// Put stores a code for the email, replacing any previous one
func (s *RedisOTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.codeKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return nil
}

// Verify compares the stored code and, on match, consumes it and marks the email verified
func (s *RedisOTPStore) Verify(ctx context.Context, email, code string, verifiedTTL time.Duration) (bool, error) {
	stored, err := s.client.Get(ctx, s.codeKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read reset code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.codeKey(email))
	pipe.Set(ctx, s.verifiedKey(email), "1", verifiedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}

	return true, nil
}

// ConsumeVerified checks and clears the verified marker for the email
func (s *RedisOTPStore) ConsumeVerified(ctx context.Context, email string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.verifiedKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume verified marker: %w", err)
	}
	return deleted > 0, nil
}

var _ OTPStore = (*RedisOTPStore)(nil)

// InMemoryOTPStore provides an in-memory implementation for testing
type InMemoryOTPStore struct {
	mu       sync.Mutex
	codes    map[string]entry
	verified map[string]entry
}

type entry struct {
	value     string
	expiresAt time.Time
}

// NewInMemoryOTPStore creates a new in-memory OTP store
func NewInMemoryOTPStore() *InMemoryOTPStore {
	return &InMemoryOTPStore{
		codes:    make(map[string]entry),
		verified: make(map[string]entry),
	}
}

// Put stores a code for the email, replacing any previous one
func (s *InMemoryOTPStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = entry{value: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Verify compares the stored code and, on match, consumes it and marks the email verified
func (s *InMemoryOTPStore) Verify(_ context.Context, email, code string, verifiedTTL time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[email]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.codes, email)
		return false, nil
	}
	if e.value != code {
		return false, nil
	}

	delete(s.codes, email)
	s.verified[email] = entry{value: "1", expiresAt: time.Now().Add(verifiedTTL)}
	return true, nil
}

// ConsumeVerified checks and clears the verified marker for the email
func (s *InMemoryOTPStore) ConsumeVerified(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.verified[email]
	delete(s.verified, email)
	if !ok || time.Now().After(e.expiresAt) {
		return false, nil
	}
	return true, nil
}

var _ OTPStore = (*InMemoryOTPStore)(nil)
