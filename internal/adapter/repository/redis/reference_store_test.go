package redis

import (
	"context"
	"testing"
	"time"
)

func TestReferenceStore_ClaimNewReference(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewReferenceStore(client)
	ctx := context.Background()

	claimed, err := store.Claim(ctx, "txn-001", time.Hour)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}

	if !claimed {
		t.Fatalf("expected fresh reference to be claimed")
	}

	val, err := client.Get(ctx, store.prefix+"txn-001").Result()
	if err != nil || val != "claimed" {
		t.Fatalf("expected claim marker, got val=%s err=%v", val, err)
	}
}

func TestReferenceStore_ClaimRejectsReplay(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewReferenceStore(client)
	ctx := context.Background()

	if _, err := store.Claim(ctx, "txn-002", time.Hour); err != nil {
		t.Fatalf("setup claim failed: %v", err)
	}

	claimed, err := store.Claim(ctx, "txn-002", time.Hour)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}

	if claimed {
		t.Fatalf("expected replayed reference to be rejected")
	}
}

func TestReferenceStore_ClaimExpiresWithTTL(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewReferenceStore(client)
	ctx := context.Background()

	if _, err := store.Claim(ctx, "txn-003", time.Minute); err != nil {
		t.Fatalf("setup claim failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	claimed, err := store.Claim(ctx, "txn-003", time.Minute)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}

	if !claimed {
		t.Fatalf("expected reference to be claimable after expiry")
	}
}
