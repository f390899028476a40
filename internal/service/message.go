package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shark/internal/logger"
	"github.com/shark/internal/model"
	"github.com/shark/internal/repository"
	"github.com/shark/internal/ws"
)

// Errors surfaced to the API layer.
var (
	ErrChatNotFound = errors.New("chat not found")
	ErrEmptyText    = errors.New("text required")
)

// previewLimit caps the chat preview at 200 characters (runes, not bytes).
const previewLimit = 200

// ChatStore is the chat lookup the service needs.
type ChatStore interface {
	GetByID(ctx context.Context, id int64) (*model.Chat, error)
}

// MessageStore persists messages. Append must atomically insert the message
// and refresh the chat preview.
type MessageStore interface {
	Append(ctx context.Context, m *model.Message, preview string) error
	ListByChat(ctx context.Context, chatID int64) ([]model.Message, error)
}

// Broadcaster fans a payload out to every live push connection.
type Broadcaster interface {
	Broadcast(v any)
}

// PushNotifier sends web-push notifications. nil disables them.
type PushNotifier interface {
	Notify(ctx context.Context, title, body string, data map[string]string)
}

// MessageService implements the send/list message path.
type MessageService struct {
	chats    ChatStore
	messages MessageStore
	hub      Broadcaster
	notifier PushNotifier

	// now is swapped in tests to pin the time label.
	now func() time.Time
}

func NewMessageService(chats ChatStore, messages MessageStore, hub Broadcaster, notifier PushNotifier) *MessageService {
	return &MessageService{
		chats:    chats,
		messages: messages,
		hub:      hub,
		notifier: notifier,
		now:      time.Now,
	}
}

// Send validates, persists and broadcasts one message.
//
// The persisted row gets status Sent; the broadcast frame carries Delivered.
// The two intentionally disagree — clients treat the live push as proof of
// delivery while the table keeps the sender-side state.
func (s *MessageService) Send(ctx context.Context, chatID int64, mine bool, text string) (*model.Message, error) {
	defer logger.DeferLogDuration("svc.Send", time.Now())()

	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("svc.Send chat lookup: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	m := &model.Message{
		ChatID: chatID,
		Mine:   mine,
		Text:   text,
		Time:   s.now().Format("15:04"),
		Status: model.MessageStatusSent,
	}
	if err := s.messages.Append(ctx, m, clip(text, previewLimit)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("svc.Send append: %w", err)
	}

	// The write is committed; nothing past this point may fail the request.
	s.hub.Broadcast(ws.MessagePayload{
		Type:   ws.EventMessage,
		ChatID: m.ChatID,
		ID:     m.ID,
		Mine:   m.Mine,
		Text:   m.Text,
		Time:   m.Time,
		Status: model.MessageStatusDelivered,
	})

	if s.notifier != nil {
		body := clip(text, 120)
		data := map[string]string{
			"chat_id":    strconv.FormatInt(m.ChatID, 10),
			"message_id": strconv.FormatInt(m.ID, 10),
		}
		go s.notifier.Notify(context.Background(), chat.Title, body, data)
	}

	return m, nil
}

// List returns a chat's full history in ascending id order.
func (s *MessageService) List(ctx context.Context, chatID int64) ([]model.Message, error) {
	defer logger.DeferLogDuration("svc.List", time.Now())()
	if _, err := s.chats.GetByID(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("svc.List chat lookup: %w", err)
	}
	msgs, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("svc.List: %w", err)
	}
	return msgs, nil
}

// clip truncates s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
