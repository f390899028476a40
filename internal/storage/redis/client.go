package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shark/internal/storage"
)

const (
	subsKey = "push:subs"
	// Подписок немного (один пользователь, несколько устройств); список обрезается.
	maxSubs         = 50
	subscriptionTTL = 30 * 24 * time.Hour
)

type Client struct {
	cli *redis.Client
}

func New(ctx context.Context, url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{cli: cli}, nil
}

func (c *Client) Close() error {
	return c.cli.Close()
}

// Add сохраняет подписку в список push:subs (с обрезкой и TTL).
func (c *Client) Add(ctx context.Context, sub storage.Subscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("redis sub encode: %w", err)
	}
	pipe := c.cli.Pipeline()
	pipe.RPush(ctx, subsKey, string(raw))
	pipe.LTrim(ctx, subsKey, -maxSubs, -1)
	pipe.Expire(ctx, subsKey, subscriptionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis sub add: %w", err)
	}
	return nil
}

// Remove удаляет подписку по endpoint (список переписывается без неё).
func (c *Client) Remove(ctx context.Context, endpoint string) error {
	list, err := c.cli.LRange(ctx, subsKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("redis sub range: %w", err)
	}
	var kept []string
	for _, item := range list {
		var sub storage.Subscription
		if json.Unmarshal([]byte(item), &sub) == nil && sub.Endpoint != endpoint {
			kept = append(kept, item)
		}
	}
	c.cli.Del(ctx, subsKey)
	for _, v := range kept {
		c.cli.RPush(ctx, subsKey, v)
	}
	if len(kept) > 0 {
		c.cli.Expire(ctx, subsKey, subscriptionTTL)
	}
	return nil
}

// List возвращает все живые подписки.
func (c *Client) List(ctx context.Context) ([]storage.Subscription, error) {
	list, err := c.cli.LRange(ctx, subsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis sub list: %w", err)
	}
	subs := make([]storage.Subscription, 0, len(list))
	for _, item := range list {
		var sub storage.Subscription
		if json.Unmarshal([]byte(item), &sub) == nil && sub.Endpoint != "" {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}
