package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SoldOutCache is an advisory Redis flag for events known to be sold
// out. It exists to shed load off the database during a sold-out rush;
// it is never the source of truth. Entries carry a TTL so a restocked
// event comes back on its own.
type SoldOutCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSoldOutCache(client *redis.Client, ttl time.Duration) *SoldOutCache {
	return &SoldOutCache{Client: client, TTL: ttl}
}

func key(eventID int64) string {
	return fmt.Sprintf("sold_out:%d", eventID)
}

// IsSoldOut reports whether the event is flagged sold out. A cache
// error reads as "not flagged" so Redis outages never block purchases.
func (c *SoldOutCache) IsSoldOut(ctx context.Context, eventID int64) bool {
	if c == nil || c.Client == nil {
		return false
	}
	_, err := c.Client.Get(ctx, key(eventID)).Result()
	return err == nil
}

// MarkSoldOut flags the event for the configured TTL.
func (c *SoldOutCache) MarkSoldOut(ctx context.Context, eventID int64) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Set(ctx, key(eventID), "1", c.TTL).Err()
}

// Clear drops the flag, e.g. after an admin restock.
func (c *SoldOutCache) Clear(ctx context.Context, eventID int64) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, key(eventID)).Err()
}
