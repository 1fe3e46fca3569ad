package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IRedis is the subset of Redis the service relies on.
type IRedis interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// SetNX sets key only if it does not exist. It reports whether the key was set.
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	// DeleteIfEqual removes key only while it still holds value.
	DeleteIfEqual(ctx context.Context, key string, value string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Publish(ctx context.Context, channel string, message any) error
	Ping(ctx context.Context) error
	Close() error
	GetClient() *goredis.Client
}

// RedisConfig holds the connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}
