// Package redis provides a Redis-backed ports.SessionStore. Conditional
// update and delete are fenced server-side with Lua scripts, so concurrent
// replicas cannot clobber each other's sessions.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/kompisbot/kompis/pkg/domain"
)

// Sessions are stored as hashes: the "id" field is the fencing token the
// scripts compare against, "data" is the JSON-encoded session.
var (
	updateScript = backend.NewScript(`
local id = redis.call('HGET', KEYS[1], 'id')
if not id then return 0 end
if id ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[1], 'data', ARGV[2])
return 1`)

	deleteScript = backend.NewScript(`
local id = redis.call('HGET', KEYS[1], 'id')
if not id then return 1 end
if id ~= ARGV[1] then return 0 end
redis.call('DEL', KEYS[1])
return 1`)
)

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "kompis:session:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(chatID string) string {
	return s.prefix + chatID
}

// Load retrieves the session for a chat.
func (s *Store) Load(ctx context.Context, chatID string) (*domain.Session, error) {
	data, err := s.client.HGet(ctx, s.key(chatID), "data").Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Create persists a brand new session.
func (s *Store) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.key(session.ChatID), "id", session.ID, "data", data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(session.ChatID), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Update overwrites the session iff the stored one still carries the same ID.
func (s *Store) Update(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := updateScript.Run(ctx, s.client, []string{s.key(session.ChatID)}, session.ID, data).Int()
	if err != nil {
		return fmt.Errorf("failed to update in redis: %w", err)
	}
	if ok == 0 {
		return domain.ErrStaleSession
	}
	return nil
}

// Delete removes the session iff the stored one still carries the same ID.
func (s *Store) Delete(ctx context.Context, session *domain.Session) error {
	ok, err := deleteScript.Run(ctx, s.client, []string{s.key(session.ChatID)}, session.ID).Int()
	if err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	if ok == 0 {
		return domain.ErrStaleSession
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
