package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dineflow/dineflow/internal/core/domain"
)

// SlotCache is a best-effort redis cache of availability listings, keyed per
// (offering, date). Every capacity mutation invalidates the affected key;
// cache errors degrade to the database, never to a request failure.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func slotCacheKey(offeringID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("slots:%s:%s", offeringID, date.Format("2006-01-02"))
}

func (c *SlotCache) Get(ctx context.Context, offeringID uuid.UUID, date time.Time) ([]domain.SlotInstance, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotCacheKey(offeringID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("slot cache get failed: %v", err)
		}
		return nil, false
	}

	var slots []domain.SlotInstance
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Printf("slot cache decode failed: %v", err)
		return nil, false
	}

	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, offeringID uuid.UUID, date time.Time, slots []domain.SlotInstance) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotCacheKey(offeringID, date), raw, c.ttl).Err(); err != nil {
		log.Printf("slot cache set failed: %v", err)
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, offeringID uuid.UUID, date time.Time) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, slotCacheKey(offeringID, date)).Err(); err != nil {
		log.Printf("slot cache invalidate failed: %v", err)
	}
}
