package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

const (
	categoryKeyPrefix = "bookstore:categories:"
	categoryIndexKey  = "bookstore:categories:index"
)

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// CategoryCache stores category listings keyed by the folded search term.
// Every written key is tracked in a set so a mutation can drop them all.
type CategoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ ports.CategoryCache = (*CategoryCache)(nil)

func NewCategoryCache(rdb *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryCache{rdb: rdb, ttl: ttl}
}

func cacheKey(search string) string {
	return categoryKeyPrefix + util.FoldKey(search)
}

func (c *CategoryCache) Get(ctx context.Context, search string) ([]domain.Category, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(search)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var categories []cachedCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false, err
	}
	out := make([]domain.Category, len(categories))
	for i, cc := range categories {
		out[i] = cc.toDomain()
	}
	return out, true, nil
}

func (c *CategoryCache) Set(ctx context.Context, search string, categories []domain.Category) error {
	payload := make([]cachedCategory, len(categories))
	for i := range categories {
		payload[i] = fromDomain(categories[i])
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	key := cacheKey(search)
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.SAdd(ctx, categoryIndexKey, key)
	pipe.Expire(ctx, categoryIndexKey, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *CategoryCache) Invalidate(ctx context.Context) error {
	keys, err := c.rdb.SMembers(ctx, categoryIndexKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys = append(keys, categoryIndexKey)
	return c.rdb.Del(ctx, keys...).Err()
}

// cachedCategory keeps name_key, which domain.Category hides from JSON.
type cachedCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	NameKey     string    `json:"name_key"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func fromDomain(c domain.Category) cachedCategory {
	return cachedCategory{ID: c.ID, Name: c.Name, NameKey: c.NameKey, Description: c.Description, CreatedAt: c.CreatedAt}
}

func (c cachedCategory) toDomain() domain.Category {
	return domain.Category{ID: c.ID, Name: c.Name, NameKey: c.NameKey, Description: c.Description, CreatedAt: c.CreatedAt}
}
