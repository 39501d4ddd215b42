// Package redis implements the session store and distributed locker over Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// maxMergeRetries bounds the optimistic transaction retry loop.
const maxMergeRetries = 5

// Store implements ports.SessionStore over a Redis document per user.
type Store struct {
	client       *backend.Client
	prefix       string
	ttl          time.Duration
	entryPhaseID string
}

type Option func(*Store)

// WithTTL sets the expiration for session documents.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for session documents.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, entryPhaseID string, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, entryPhaseID, opts...)
}

// NewFromClient creates a Redis store from an existing client. Fresh
// sessions are initialized at entryPhaseID.
func NewFromClient(client *backend.Client, entryPhaseID string, opts ...Option) *Store {
	store := &Store{
		client:       client,
		prefix:       "nomibot:session:",
		ttl:          0, // No expiration by default
		entryPhaseID: entryPhaseID,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Get retrieves the session document for a user.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	return unmarshalSession([]byte(val))
}

// GetOrCreate returns the existing session or initializes a fresh one at
// the entry phase. SetNX guarantees a single document per user even when
// two first-contact events race.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.Get(ctx, userID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	fresh := domain.NewSession(userID, s.entryPhaseID)
	data, err := json.Marshal(fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	created, err := s.client.SetNX(ctx, s.key(userID), data, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session in redis: %w", err)
	}
	if created {
		return fresh, nil
	}
	// Lost the creation race; the winner's document is authoritative.
	return s.Get(ctx, userID)
}

// Merge applies a partial update to the session document, preserving fields
// not named in the update. It runs as an optimistic WATCH/MULTI transaction
// retried on conflict, so concurrent merges from other instances are never
// silently overwritten.
func (s *Store) Merge(ctx context.Context, userID string, update domain.SessionUpdate) error {
	key := s.key(userID)

	txf := func(tx *backend.Tx) error {
		session := domain.NewSession(userID, s.entryPhaseID)

		val, err := tx.Get(ctx, key).Result()
		switch {
		case err == nil:
			session, err = unmarshalSession([]byte(val))
			if err != nil {
				return err
			}
		case !errors.Is(err, backend.Nil):
			return fmt.Errorf("failed to get session from redis: %w", err)
		}

		update.Apply(session)

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxMergeRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, backend.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("merge for user %s kept conflicting after %d attempts", userID, maxMergeRetries)
}

// Delete removes the session document.
func (s *Store) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func unmarshalSession(data []byte) (*domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.History == nil {
		session.History = []domain.HistoryEntry{}
	}
	return &session, nil
}
