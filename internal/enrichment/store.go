// internal/enrichment/store.go
package enrichment

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	commonerrors "chinook-assistant/internal/common/errors"
)

const keyPrefix = "artist-results:"

// Store keeps lookup entries in Redis. Entries expire after the configured
// TTL, so stale results age out on their own instead of accumulating.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func lookupKey(artistName string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(artistName))
}

// Get returns the entry for an artist, or nil when none is stored.
func (s *Store) Get(ctx context.Context, artistName string) (*Entry, error) {
	val, err := s.client.Get(ctx, lookupKey(artistName)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	return &entry, nil
}

// Put unconditionally overwrites the entry for an artist. Last writer wins.
func (s *Store) Put(ctx context.Context, artistName string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return commonerrors.NewStoreAccessError(err)
	}
	if err := s.client.Set(ctx, lookupKey(artistName), data, s.ttl).Err(); err != nil {
		return commonerrors.NewStoreAccessError(err)
	}
	return nil
}
