package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

const recordsKey = "monitores:records"

type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Get(ctx context.Context) ([]model.SiteRecord, bool, error) {
	data, err := c.client.Get(ctx, recordsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached records: %w", err)
	}

	var records []model.SiteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached records: %w", err)
	}

	logger.Debug("Record cache hit", zap.Int("count", len(records)))
	return records, true, nil
}

func (c *Client) Set(ctx context.Context, records []model.SiteRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := c.client.Set(ctx, recordsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set record cache: %w", err)
	}

	logger.Debug("Records cached", zap.Int("count", len(records)), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *Client) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, recordsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate record cache: %w", err)
	}

	logger.Info("Record cache invalidated")
	return nil
}
