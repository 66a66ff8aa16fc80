package redis

import (
	"context"
	"fmt"
	"time"

	"cloudcost/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const servicePrefix = "cloudcost."

const (
	jwtPrefix      = servicePrefix + "jwt."
	trendJobPrefix = servicePrefix + "trend."
	catalogKey     = servicePrefix + "catalog"
)

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	client.client = redis.NewClient(&redis.Options{
		Password:    cfg.Password,
		Username:    cfg.User,
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if _, err := client.client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cannot ping redis: %w", err)
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// ============ Blacklist JWT токенов ============

func getJWTKey(token string) string {
	return jwtPrefix + token
}

func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, getJWTKey(jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен есть в blacklist
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, getJWTKey(jwtStr)).Err()
}

// ============ Статусы асинхронных задач (тренды) ============

func getTrendJobKey(jobID string) string {
	return trendJobPrefix + jobID
}

// SetTrendJob сохраняет сериализованное состояние задачи с TTL
func (c *Client) SetTrendJob(ctx context.Context, jobID string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, getTrendJobKey(jobID), payload, ttl).Err()
}

// GetTrendJob возвращает состояние задачи; redis.Nil если задачи нет
func (c *Client) GetTrendJob(ctx context.Context, jobID string) ([]byte, error) {
	return c.client.Get(ctx, getTrendJobKey(jobID)).Bytes()
}

// IsNotFound проверяет, что ключа нет в redis
func IsNotFound(err error) bool {
	return err == redis.Nil
}

// ============ Кэш каталога провайдера ============

func (c *Client) SetCatalogCache(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, catalogKey, payload, ttl).Err()
}

func (c *Client) GetCatalogCache(ctx context.Context) ([]byte, error) {
	return c.client.Get(ctx, catalogKey).Bytes()
}
