package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

func setupSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionStore(client), mr
}

func testSession(id, userID string) *domain.Session {
	return &domain.Session{
		ID:           id,
		UserID:       userID,
		Token:        "token-" + id,
		RefreshToken: "refresh-" + id,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
		CreatedAt:    time.Now(),
	}
}

func TestSessionStoreSaveAndGet(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()
	session := testSession("s-1", "user-1")

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	retrieved, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if retrieved.UserID != session.UserID || retrieved.Token != session.Token {
		t.Errorf("unexpected session %+v", retrieved)
	}
}

func TestSessionStoreGetNotFound(t *testing.T) {
	store, _ := setupSessionStore(t)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreSaveSkipsExpired(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	session := testSession("s-1", "user-1")
	session.ExpiresAt = time.Now().Add(-time.Hour)

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected expired session not stored, got %v", err)
	}
}

func TestSessionStoreTokenLookups(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()
	session := testSession("s-1", "user-1")

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	byToken, err := store.GetByToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if byToken.ID != session.ID {
		t.Errorf("expected %s, got %s", session.ID, byToken.ID)
	}

	byRefresh, err := store.GetByRefreshToken(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("get by refresh token: %v", err)
	}
	if byRefresh.ID != session.ID {
		t.Errorf("expected %s, got %s", session.ID, byRefresh.ID)
	}

	if _, err := store.GetByToken(ctx, "unknown"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreDeleteRemovesIndexes(t *testing.T) {
	store, mr := setupSessionStore(t)
	ctx := context.Background()
	session := testSession("s-1", "user-1")

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if mr.Exists(sessionTokenPrefix + session.Token) {
		t.Error("token index should be removed")
	}
	if mr.Exists(sessionRefreshPrefix + session.RefreshToken) {
		t.Error("refresh token index should be removed")
	}
	if _, err := store.GetByToken(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreDeleteNotFound(t *testing.T) {
	store, _ := setupSessionStore(t)

	if err := store.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreDeleteByUser(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	s1 := testSession("s-1", "user-1")
	s2 := testSession("s-2", "user-1")
	other := testSession("s-3", "user-2")

	for _, s := range []*domain.Session{s1, s2, other} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save %s: %v", s.ID, err)
		}
	}

	if err := store.DeleteByUser(ctx, "user-1"); err != nil {
		t.Fatalf("delete by user: %v", err)
	}

	if _, err := store.Get(ctx, s1.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected s-1 deleted, got %v", err)
	}
	if _, err := store.Get(ctx, s2.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected s-2 deleted, got %v", err)
	}
	if _, err := store.Get(ctx, other.ID); err != nil {
		t.Errorf("expected other user's session intact, got %v", err)
	}
}

func TestSessionStoreTTLExpiry(t *testing.T) {
	store, mr := setupSessionStore(t)
	ctx := context.Background()

	session := testSession("s-1", "user-1")
	session.ExpiresAt = time.Now().Add(2 * time.Second)

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(3 * time.Second)

	if _, err := store.Get(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected session expired under TTL, got %v", err)
	}
}
