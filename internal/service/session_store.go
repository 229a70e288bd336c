package service

import (
	"context"
	"encoding/json"
	"errors"
	"quizwhiz/internal/cache"
	"quizwhiz/internal/domain"
	"time"
)

// SessionStore persists session snapshots between user actions. It is the
// only place a session crosses a serialization boundary; the state machine
// itself never sees the store.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore creates a snapshot store on top of the cache port.
// Snapshots expire after ttl; an abandoned quiz cleans itself up.
func NewSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func (s *cacheSessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to serialize session", err)
	}
	if err := s.cache.Set(ctx, cache.SessionStateKey(session.ID), string(data), s.ttl); err != nil {
		return domain.NewInternalError("failed to store session", err)
	}
	return nil
}

func (s *cacheSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := s.cache.Get(ctx, cache.SessionStateKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("failed to load session", err)
	}
	session := &domain.Session{}
	if err := json.Unmarshal([]byte(data), session); err != nil {
		return nil, domain.NewInternalError("failed to deserialize session", err)
	}
	return session, nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, cache.SessionStateKey(sessionID)); err != nil {
		return domain.NewInternalError("failed to delete session", err)
	}
	return nil
}
