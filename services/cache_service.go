package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"paiges_bagels_server/config"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching functionality with connection pooling and retry logic
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// CloseCache closes the shared Redis connection pool. Called once during
// server shutdown.
func CloseCache() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			// fallback to no jitter if random fails
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	// Retry on network/connection errors
	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil // Don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// ============================================================================
// Catalog Caching Methods
// ============================================================================

// GetBagelTypes retrieves the cached active bagel type list
func (cs *CacheService) GetBagelTypes() ([]tables.BagelType, error) {
	types, err := getJSON[[]tables.BagelType](cs, "catalog:bagel_types")
	if err != nil {
		cs.logger.Warn("Failed to get bagel types from cache", gecho.Field("error", err))
		return nil, err
	}

	if types == nil {
		return nil, nil
	}

	return *types, nil
}

// SetBagelTypes caches the active bagel type list
func (cs *CacheService) SetBagelTypes(types []tables.BagelType) error {
	return setJSON(cs, "catalog:bagel_types", types, cs.getCatalogTTL())
}

// GetAddOnTypes retrieves the cached active add-on type list
func (cs *CacheService) GetAddOnTypes() ([]tables.AddOnType, error) {
	types, err := getJSON[[]tables.AddOnType](cs, "catalog:addon_types")
	if err != nil {
		cs.logger.Warn("Failed to get add-on types from cache", gecho.Field("error", err))
		return nil, err
	}

	if types == nil {
		return nil, nil
	}

	return *types, nil
}

// SetAddOnTypes caches the active add-on type list
func (cs *CacheService) SetAddOnTypes(types []tables.AddOnType) error {
	return setJSON(cs, "catalog:addon_types", types, cs.getCatalogTTL())
}

// InvalidateCatalog removes the cached catalog lists. Called on any
// bagel type or add-on type mutation.
func (cs *CacheService) InvalidateCatalog() error {
	if err := cs.Delete("catalog:bagel_types"); err != nil {
		return err
	}
	return cs.Delete("catalog:addon_types")
}

// ============================================================================
// Pricing Tier Caching Methods
// ============================================================================

// GetPricingTiers retrieves a cached tier set for a pricing type
func (cs *CacheService) GetPricingTiers(pricingType tables.PricingType) ([]tables.PricingTier, error) {
	key := fmt.Sprintf("pricing:tiers:%s", pricingType)

	tiers, err := getJSON[[]tables.PricingTier](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get pricing tiers from cache",
			gecho.Field("error", err),
			gecho.Field("pricing_type", pricingType))
		return nil, err
	}

	if tiers == nil {
		return nil, nil
	}

	return *tiers, nil
}

// SetPricingTiers caches a tier set for a pricing type
func (cs *CacheService) SetPricingTiers(pricingType tables.PricingType, tiers []tables.PricingTier) error {
	key := fmt.Sprintf("pricing:tiers:%s", pricingType)
	return setJSON(cs, key, tiers, cs.getPricingTTL())
}

// InvalidatePricingTiers removes a cached tier set
func (cs *CacheService) InvalidatePricingTiers(pricingType tables.PricingType) error {
	return cs.Delete(fmt.Sprintf("pricing:tiers:%s", pricingType))
}

// ============================================================================
// Webhook Deduplication
// ============================================================================

// MarkWebhookEventSeen records a payment provider event id with SETNX.
// Returns true when this is the first delivery of the event; replays and
// provider retries return false and must be acknowledged without effect.
func (cs *CacheService) MarkWebhookEventSeen(eventID string) (bool, error) {
	key := fmt.Sprintf("webhook:event:%s", eventID)

	var first bool
	err := cs.withRetry(func() error {
		ok, err := cs.client.SetNX(redisCtx, key, "1", cs.config.Cache.WebhookDedupTTL).Result()
		if err != nil {
			return err
		}
		first = ok
		return nil
	}, 3)

	return first, err
}

// ============================================================================
// Rate Limiting
// ============================================================================

// IncrementRateLimit atomically increments a rate limit counter
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection
func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// ============================================================================
// Helper Methods
// ============================================================================

func (cs *CacheService) getCatalogTTL() time.Duration {
	if cs.config.Cache.CatalogTTL > 0 {
		return cs.config.Cache.CatalogTTL
	}
	return 5 * time.Minute // fallback default
}

func (cs *CacheService) getPricingTTL() time.Duration {
	if cs.config.Cache.PricingTTL > 0 {
		return cs.config.Cache.PricingTTL
	}
	return 10 * time.Minute // fallback default
}

func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(key, data, ttl)
}

func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	err = json.Unmarshal([]byte(val), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
