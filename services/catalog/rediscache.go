package catalog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const redisCatalogKey = "catalog:all_cards"

// RedisCache shares one serialized copy of the catalog between server
// processes. Any miss or marshal error just falls back to a DB load.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ctx: context.Background()}
}

func (c *RedisCache) Get() ([]Card, bool) {
	raw, err := c.client.Get(c.ctx, redisCatalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var cards []Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, false
	}
	return cards, true
}

func (c *RedisCache) Set(cards []Card) {
	raw, err := json.Marshal(cards)
	if err != nil {
		return
	}
	c.client.Set(c.ctx, redisCatalogKey, raw, 0)
}

func (c *RedisCache) Invalidate() {
	c.client.Del(c.ctx, redisCatalogKey)
}
