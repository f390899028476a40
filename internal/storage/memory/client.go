package memory

import (
	"context"
	"sync"

	"github.com/shark/internal/storage"
)

const maxSubs = 50

// Client — in-memory хранилище подписок (запуск без Redis; подписки живут
// до перезапуска процесса).
type Client struct {
	mu   sync.RWMutex
	subs []storage.Subscription
}

func New() *Client {
	return &Client{}
}

func (c *Client) Close() error { return nil }

func (c *Client) Add(ctx context.Context, sub storage.Subscription) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.Endpoint == sub.Endpoint {
			c.subs[i] = sub
			return nil
		}
	}
	c.subs = append(c.subs, sub)
	if len(c.subs) > maxSubs {
		c.subs = c.subs[len(c.subs)-maxSubs:]
	}
	return nil
}

func (c *Client) Remove(ctx context.Context, endpoint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.subs[:0]
	for _, s := range c.subs {
		if s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	c.subs = kept
	return nil
}

func (c *Client) List(ctx context.Context) ([]storage.Subscription, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]storage.Subscription, len(c.subs))
	copy(out, c.subs)
	return out, nil
}
