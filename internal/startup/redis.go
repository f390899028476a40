package startup

import (
	"context"
	"time"

	"github.com/shark/internal/logger"
	"github.com/shark/internal/storage"
	"github.com/shark/internal/storage/memory"
	redisstorage "github.com/shark/internal/storage/redis"
)

// OpenSubscriptionStore подключает Redis для web-push подписок; при пустом
// URL или недоступном Redis возвращает in-memory хранилище (подписки живут
// до перезапуска).
func OpenSubscriptionStore(redisURL string) storage.SubscriptionStore {
	if redisURL == "" {
		return memory.New()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := redisstorage.New(ctx, redisURL)
	if err != nil {
		logger.Errorf("redis unavailable, falling back to in-memory subscriptions: %v", err)
		return memory.New()
	}
	logger.Info("redis connected")
	return client
}
