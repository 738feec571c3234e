package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/logger"
)

const (
	addonProductKeyPrefix = "addon:product:"
	baseAddonProductTTL   = 30 * time.Minute
	addonProductTTLJitter = 5 * time.Minute
)

// cachedAddonProduct is the JSON snapshot stored under addon:product:{id}.
type cachedAddonProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Frequency   string          `json:"frequency"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Unit        string          `json:"unit"`
	IsActive    bool            `json:"is_active"`
	SortOrder   int             `json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AddonProductCache wraps an add-on product repository with a Redis read-through
// cache. Writes go to the database first and then drop the cached entry. Any
// Redis failure falls back to the database.
type AddonProductCache struct {
	next   agreement.AddonProductRepository
	client *redis.Client
	logger logger.Interface
}

func NewAddonProductCache(next agreement.AddonProductRepository, client *redis.Client, logger logger.Interface) *AddonProductCache {
	return &AddonProductCache{
		next:   next,
		client: client,
		logger: logger,
	}
}

var _ agreement.AddonProductRepository = (*AddonProductCache)(nil)

func (c *AddonProductCache) key(id string) string {
	return addonProductKeyPrefix + id
}

func (c *AddonProductCache) Create(ctx context.Context, p *agreement.AddonProduct) error {
	if err := c.next.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID())
	return nil
}

func (c *AddonProductCache) Update(ctx context.Context, p *agreement.AddonProduct) error {
	if err := c.next.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID())
	return nil
}

func (c *AddonProductCache) GetByID(ctx context.Context, id string) (*agreement.AddonProduct, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		p, decodeErr := decodeAddonProduct(raw)
		if decodeErr == nil {
			return p, nil
		}
		c.logger.Warnw("ignoring undecodable add-on cache entry", "addon_id", id, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warnw("add-on cache read failed, using database", "addon_id", id, "error", err)
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, p)
	return p, nil
}

// GetByIDs serves hits from one MGET and loads the misses from the database.
func (c *AddonProductCache) GetByIDs(ctx context.Context, ids []string) ([]*agreement.AddonProduct, error) {
	if len(ids) == 0 {
		return []*agreement.AddonProduct{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warnw("add-on cache read failed, using database", "count", len(ids), "error", err)
		return c.next.GetByIDs(ctx, ids)
	}

	result := make([]*agreement.AddonProduct, 0, len(ids))
	var missing []string
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		p, err := decodeAddonProduct([]byte(s))
		if err != nil {
			missing = append(missing, ids[i])
			continue
		}
		result = append(result, p)
	}

	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := c.next.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range loaded {
		c.store(ctx, p)
	}
	return append(result, loaded...), nil
}

// List always reads the database; catalog listings are not on the pricing path.
func (c *AddonProductCache) List(ctx context.Context, activeOnly bool) ([]*agreement.AddonProduct, error) {
	return c.next.List(ctx, activeOnly)
}

func (c *AddonProductCache) store(ctx context.Context, p *agreement.AddonProduct) {
	raw, err := json.Marshal(cachedAddonProduct{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Category:    p.Category().String(),
		Frequency:   p.Frequency().String(),
		BasePrice:   p.BasePrice(),
		Unit:        p.Unit(),
		IsActive:    p.IsActive(),
		SortOrder:   p.SortOrder(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	})
	if err != nil {
		c.logger.Warnw("failed to encode add-on for cache", "addon_id", p.ID(), "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(p.ID()), raw, addonProductTTLWithJitter()).Err(); err != nil {
		c.logger.Warnw("failed to cache add-on", "addon_id", p.ID(), "error", err)
	}
}

func (c *AddonProductCache) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warnw("failed to invalidate add-on cache", "addon_id", id, "error", err)
	}
}

func decodeAddonProduct(raw []byte) (*agreement.AddonProduct, error) {
	var cached cachedAddonProduct
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached add-on: %w", err)
	}
	return agreement.ReconstructAddonProduct(
		cached.ID,
		cached.Name,
		cached.Description,
		vo.AddonCategory(cached.Category),
		vo.AddonFrequency(cached.Frequency),
		cached.BasePrice,
		cached.Unit,
		cached.IsActive,
		cached.SortOrder,
		cached.CreatedAt,
		cached.UpdatedAt,
	)
}

// addonProductTTLWithJitter spreads expiry over 30-35 minutes.
func addonProductTTLWithJitter() time.Duration {
	return baseAddonProductTTL + time.Duration(rand.Int64N(int64(addonProductTTLJitter)))
}
