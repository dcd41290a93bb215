// Package redis caches resource hub reads. Chat text, assessments and
// triage results are never cached: they must not outlive their request.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/resources"
	"github.com/furyfist/WellNest/pkg/logger"
)

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

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))
	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func listKey(topic string) string {
	if topic == "" {
		return "resources:list"
	}
	return "resources:list:" + topic
}

func (c *Client) SetResourceList(ctx context.Context, topic string, list []resources.Resource) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal resource list: %w", err)
	}

	if err := c.client.Set(ctx, listKey(topic), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resource list: %w", err)
	}
	return nil
}

func (c *Client) GetResourceList(ctx context.Context, topic string) ([]resources.Resource, bool, error) {
	data, err := c.client.Get(ctx, listKey(topic)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read resource list cache: %w", err)
	}

	var list []resources.Resource
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal resource list: %w", err)
	}
	return list, true, nil
}

func (c *Client) SetResource(ctx context.Context, r *resources.Resource) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal resource: %w", err)
	}

	if err := c.client.Set(ctx, "resources:item:"+r.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resource: %w", err)
	}
	return nil
}

func (c *Client) GetResource(ctx context.Context, id string) (*resources.Resource, bool, error) {
	data, err := c.client.Get(ctx, "resources:item:"+id).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read resource cache: %w", err)
	}

	var r resources.Resource
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal resource: %w", err)
	}
	return &r, true, nil
}

// InvalidateLists drops cached listings after an ingestion.
func (c *Client) InvalidateLists(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "resources:list*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache key: %w", err)
		}
	}
	return iter.Err()
}
