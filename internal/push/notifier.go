package push

import (
	"context"
	"encoding/json"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/shark/internal/logger"
	"github.com/shark/internal/storage"
)

// Notifier отправляет Web Push уведомления всем сохранённым подпискам.
// Подписки анонимные и общие на процесс (нет пользователей — нет адресации).
type Notifier struct {
	store storage.SubscriptionStore
	vapid *webpush.Options
}

// NewNotifier создаёт notifier. keys nil — отправка выключена, подписки
// при этом сохраняются.
func NewNotifier(store storage.SubscriptionStore, keys *VAPIDKeys) *Notifier {
	n := &Notifier{store: store}
	if keys != nil && keys.PublicKey != "" && keys.PrivateKey != "" {
		n.vapid = &webpush.Options{
			Subscriber:      "shark-push",
			VAPIDPublicKey:  keys.PublicKey,
			VAPIDPrivateKey: keys.PrivateKey,
			TTL:             30,
		}
	}
	return n
}

// Subscribe сохраняет подписку браузера.
func (n *Notifier) Subscribe(ctx context.Context, sub storage.Subscription) error {
	return n.store.Add(ctx, sub)
}

// Unsubscribe удаляет подписку по endpoint.
func (n *Notifier) Unsubscribe(ctx context.Context, endpoint string) error {
	return n.store.Remove(ctx, endpoint)
}

// Notify шлёт уведомление каждой подписке. Ошибки отправки только логируются;
// подписки с ответом 404/410 удаляются.
func (n *Notifier) Notify(ctx context.Context, title, body string, data map[string]string) {
	if n.vapid == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	subs, err := n.store.List(ctx)
	if err != nil {
		logger.Errorf("push notify list: %v", err)
		return
	}
	payload, _ := json.Marshal(map[string]any{"title": title, "body": body, "data": data})
	for i := range subs {
		sub := &subs[i]
		wpSub := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.Keys.P256dh, Auth: sub.Keys.Auth},
		}
		resp, err := webpush.SendNotificationWithContext(ctx, payload, wpSub, n.vapid)
		if err != nil {
			logger.Errorf("push send %s: %v", shorten(sub.Endpoint), err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == 410 || resp.StatusCode == 404 {
			if err := n.store.Remove(ctx, sub.Endpoint); err != nil {
				logger.Errorf("push remove expired %s: %v", shorten(sub.Endpoint), err)
			}
		}
	}
}

func shorten(endpoint string) string {
	if len(endpoint) > 50 {
		return endpoint[:50]
	}
	return endpoint
}
