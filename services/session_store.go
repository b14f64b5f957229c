package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the active refresh session id per user.
type SessionStore interface {
	Save(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error
	Get(ctx context.Context, userID uint) (string, error)
	Delete(ctx context.Context, userID uint) error
}

func sessionKey(userID uint) string { return fmt.Sprintf("session:%d", userID) }

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(userID), sessionID, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, userID uint) (string, error) {
	id, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return id, err
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}

type memorySession struct {
	id      string
	expires time.Time
}

// MemorySessionStore is used when no redis address is configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[uint]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[uint]memorySession{}, now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, userID uint, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = memorySession{id: sessionID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, userID)
		return "", ErrSessionNotFound
	}
	return sess.id, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
