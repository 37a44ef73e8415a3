package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is how long read responses stay cached.
const CacheTTL = 60 * time.Second

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// InvalidatePages deletes the first pages of a paginated cache under
// prefix. Listing keys follow the "<prefix>:page:N" shape; the first
// handful covers what users actually browse, deeper pages expire on
// their own TTL.
func InvalidatePages(ctx context.Context, rdb *redis.Client, prefix string, pages int) {
	for i := 1; i <= pages; i++ {
		_ = DeleteCache(ctx, rdb, prefix+":page:"+strconv.Itoa(i))
	}
}

// BalanceKey is the cache key for a user's balance summary.
func BalanceKey(userID uint) string {
	return "leave:balance:user:" + strconv.FormatUint(uint64(userID), 10)
}

// OwnLeavesPrefix is the cache key prefix for a user's own listings.
func OwnLeavesPrefix(userID uint, status string) string {
	return "leave:own:user:" + strconv.FormatUint(uint64(userID), 10) + ":status:" + status
}

// AdminLeavesPrefix is the cache key prefix for the administrator listing.
func AdminLeavesPrefix(status, keyword string) string {
	return "leave:all:status:" + status + ":kw:" + keyword
}

// AnalyticsKey is the cache key for the analytics view.
func AnalyticsKey() string {
	return "leave:analytics"
}
