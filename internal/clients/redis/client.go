package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-bridge/internal/config"
	"voice-bridge/internal/observability"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotInitialized = errors.New("redis client not initialized")
	ErrKeyNotFound    = errors.New("redis key not found")
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. A disabled config yields a nil client.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	)
	logger.Info(ctx, "successfully connected to Redis")

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// NewFromRedis wraps an already configured go-redis client.
func NewFromRedis(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Set stores value under key with the given expiration
func (c *Client) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if c == nil || c.client == nil {
		return ErrNotInitialized
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get returns the raw value for key, or ErrKeyNotFound
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, ErrNotInitialized
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

// Del deletes keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil {
		return ErrNotInitialized
	}
	return c.client.Del(ctx, keys...).Err()
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}

// WindowCount drops sorted-set members scored before since and returns how
// many remain at key.
func (c *Client) WindowCount(ctx context.Context, key string, since time.Time) (int64, error) {
	if c == nil || c.client == nil {
		return 0, ErrNotInitialized
	}
	if err := c.client.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", since.UnixMilli())).Err(); err != nil {
		return 0, fmt.Errorf("failed to trim window: %w", err)
	}
	count, err := c.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count window: %w", err)
	}
	return count, nil
}

// WindowOldest returns the earliest timestamp recorded at key.
func (c *Client) WindowOldest(ctx context.Context, key string) (time.Time, bool, error) {
	if c == nil || c.client == nil {
		return time.Time{}, false, ErrNotInitialized
	}
	oldest, err := c.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return time.Time{}, false, err
	}
	if len(oldest) == 0 {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(int64(oldest[0].Score)), true, nil
}

// WindowAdd records member at the given time and refreshes the key's expiry.
func (c *Client) WindowAdd(ctx context.Context, key, member string, at time.Time, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrNotInitialized
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixMilli()), Member: member})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record window entry: %w", err)
	}
	return nil
}
