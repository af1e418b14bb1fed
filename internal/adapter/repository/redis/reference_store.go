package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReferenceStore implements usecase.ReferenceStore using Redis. A one-time
// client reference is claimed with SET NX; a second claim within the
// retention window fails.
type ReferenceStore struct {
	client *redis.Client
	prefix string
}

// NewReferenceStore creates a new ReferenceStore.
func NewReferenceStore(client *redis.Client) *ReferenceStore {
	return &ReferenceStore{
		client: client,
		prefix: "reference:",
	}
}

// Claim atomically claims a reference. It returns false when the reference
// was already claimed.
func (s *ReferenceStore) Claim(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+reference, "claimed", ttl).Result()
}
