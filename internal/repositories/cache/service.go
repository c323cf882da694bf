// Package cache provides the Redis-backed cache used for wallet lookups and
// transfer idempotency keys. Daily limit usage is deliberately never cached;
// the limit guard must read fresh data before every decision.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fluidit/internal/models"

	"github.com/redis/go-redis/v9"
)

const walletKeyPrefix = "wallet:user:"

// CacheService wraps the Redis client with typed helpers and a default TTL.
type CacheService struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewCacheService creates a cache service with the given default TTL.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, defaultTTL: defaultTTL}
}

func walletKey(userID uint) string {
	return fmt.Sprintf("%s%d", walletKeyPrefix, userID)
}

// GetWallet returns a cached wallet, or an error on miss.
func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	data, err := s.client.Get(ctx, walletKey(userID)).Bytes()
	if err != nil {
		return nil, err
	}
	var wallet models.Wallet
	if err := json.Unmarshal(data, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// SetWallet caches a wallet for 5 minutes.
func (s *CacheService) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, walletKey(wallet.UserID), data, 5*time.Minute).Err()
}

// InvalidateWallet drops the cached wallet after a balance mutation.
func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, walletKey(userID)).Err()
}

// Get returns a raw cached value.
func (s *CacheService) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

// Set stores a value with an explicit TTL; zero means the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	return s.client.Set(ctx, key, value, ttl).Err()
}

// SetNX stores a value only if the key is absent. Used to claim transfer
// idempotency keys; the bool reports whether this caller won the claim.
func (s *CacheService) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	return s.client.SetNX(ctx, key, value, ttl).Result()
}

// Delete removes a key.
func (s *CacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Ping checks Redis connectivity.
func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// FlushAll clears the cache. Used at startup in development.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close releases the underlying Redis connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
