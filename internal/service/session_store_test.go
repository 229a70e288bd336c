package service

import (
	"context"
	"testing"
	"time"

	"quizwhiz/internal/cache"
	"quizwhiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SaveAndGetRoundTrip(t *testing.T) {
	mockCache := new(MockCache)
	store := NewSessionStore(mockCache, time.Hour)

	session := playingSession(t)
	key := cache.SessionStateKey(session.ID)

	var stored string
	mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), time.Hour).
		Run(func(args mock.Arguments) { stored = args.String(2) }).
		Return(nil)

	require.NoError(t, store.Save(context.Background(), session))
	require.NotEmpty(t, stored)

	mockCache.On("Get", mock.Anything, key).Return(stored, nil)

	loaded, err := store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.State, loaded.State)
	assert.Equal(t, len(session.Questions), len(loaded.Questions))

	// The restored machine keeps working.
	outcome, err := loaded.SubmitAnswer("Paris")
	require.NoError(t, err)
	assert.True(t, outcome.Correct)
}

func TestSessionStore_GetMiss(t *testing.T) {
	mockCache := new(MockCache)
	store := NewSessionStore(mockCache, time.Hour)

	mockCache.On("Get", mock.Anything, cache.SessionStateKey("unknown")).
		Return("", domain.ErrCacheMiss)

	_, err := store.Get(context.Background(), "unknown")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
}

func TestSessionStore_GetCorruptSnapshot(t *testing.T) {
	mockCache := new(MockCache)
	store := NewSessionStore(mockCache, time.Hour)

	mockCache.On("Get", mock.Anything, mock.Anything).Return("{not json", nil)

	_, err := store.Get(context.Background(), "whatever")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestSessionStore_Delete(t *testing.T) {
	mockCache := new(MockCache)
	store := NewSessionStore(mockCache, time.Hour)

	mockCache.On("Delete", mock.Anything, cache.SessionStateKey("gone")).Return(nil)

	assert.NoError(t, store.Delete(context.Background(), "gone"))
	mockCache.AssertExpectations(t)
}
