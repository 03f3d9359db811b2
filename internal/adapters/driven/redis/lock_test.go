package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupLock(t *testing.T) (*Lock, *Lock, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLock(client), NewLock(client), mr
}

func TestLockAcquireAndRelease(t *testing.T) {
	lockA, lockB, _ := setupLock(t)
	ctx := context.Background()

	acquired, err := lockA.Acquire(ctx, "index:rebuild", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("expected first acquire to succeed")
	}

	// Second instance cannot take the held lock
	acquired, err = lockB.Acquire(ctx, "index:rebuild", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if acquired {
		t.Error("expected second acquire to fail while held")
	}

	if err := lockA.Release(ctx, "index:rebuild"); err != nil {
		t.Fatalf("release: %v", err)
	}

	acquired, err = lockB.Acquire(ctx, "index:rebuild", time.Minute)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	if !acquired {
		t.Error("expected acquire to succeed after release")
	}
}

func TestLockReleaseByNonOwnerIsNoop(t *testing.T) {
	lockA, lockB, mr := setupLock(t)
	ctx := context.Background()

	if _, err := lockA.Acquire(ctx, "index:rebuild", time.Minute); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// Non-owner release must not drop the lock
	if err := lockB.Release(ctx, "index:rebuild"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !mr.Exists(lockPrefix + "index:rebuild") {
		t.Error("lock should survive release by non-owner")
	}
}

func TestLockExpiresUnderTTL(t *testing.T) {
	lockA, lockB, mr := setupLock(t)
	ctx := context.Background()

	if _, err := lockA.Acquire(ctx, "index:rebuild", 2*time.Second); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	mr.FastForward(3 * time.Second)

	acquired, err := lockB.Acquire(ctx, "index:rebuild", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Error("expected lock available after TTL expiry")
	}
}

func TestLockExtend(t *testing.T) {
	lockA, lockB, mr := setupLock(t)
	ctx := context.Background()

	if _, err := lockA.Acquire(ctx, "index:rebuild", 2*time.Second); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := lockA.Extend(ctx, "index:rebuild", time.Minute); err != nil {
		t.Fatalf("extend: %v", err)
	}

	mr.FastForward(3 * time.Second)

	// Extended past the original TTL, still held
	acquired, err := lockB.Acquire(ctx, "index:rebuild", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if acquired {
		t.Error("expected extended lock still held")
	}

	// Non-owner cannot extend
	if err := lockB.Extend(ctx, "index:rebuild", time.Minute); err == nil {
		t.Error("expected extend by non-owner to fail")
	}
}
