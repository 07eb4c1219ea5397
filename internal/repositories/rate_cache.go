package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

// ErrCacheMiss is returned when no rate table is cached for the base currency.
var ErrCacheMiss = errors.New("rate table not cached")

// RateCacheRepository caches the display rate table in Redis
type RateCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached tables
}

// NewRateCacheRepository creates a new repository instance with the given TTL
func NewRateCacheRepository(client *redis.Client, expiration time.Duration) *RateCacheRepository {
	return &RateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func rateTableKey(base string) string {
	return fmt.Sprintf("rates:%s", models.NormalizeCurrency(base))
}

// GetRateTable returns the cached table for base, or ErrCacheMiss
func (r *RateCacheRepository) GetRateTable(ctx context.Context, base string) (*models.RateTable, error) {
	key := rateTableKey(base)

	val, err := r.client.Get(ctx, key).Bytes()
	logger.Log.Debugw("cache get", "key", key, "size", len(val), "error", err)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var table models.RateTable
	if err := json.Unmarshal(val, &table); err != nil {
		logger.Log.Warnw("corrupt cached rate table", "key", key, "error", err)
		return nil, err
	}
	return &table, nil
}

// SetRateTable caches the table under its base currency with expiration
func (r *RateCacheRepository) SetRateTable(ctx context.Context, table *models.RateTable) error {
	key := rateTableKey(table.Base)

	data, err := json.Marshal(table)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Debugw("cache set", "key", key, "ttl", r.exp, "error", err)

	return err
}
