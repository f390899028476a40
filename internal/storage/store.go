package storage

import "context"

// Subscription — web-push подписка браузера (endpoint + ключи шифрования).
type Subscription struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// SubscriptionStore — хранилище web-push подписок процесса.
// Реализации: redis.Client, memory.Client (когда Redis не настроен).
type SubscriptionStore interface {
	Add(ctx context.Context, sub Subscription) error
	Remove(ctx context.Context, endpoint string) error
	List(ctx context.Context) ([]Subscription, error)
	Close() error
}
