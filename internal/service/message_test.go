package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shark/internal/model"
	"github.com/shark/internal/repository"
	"github.com/shark/internal/ws"
)

type fakeChatStore struct {
	chats map[int64]*model.Chat
}

func (f *fakeChatStore) GetByID(ctx context.Context, id int64) (*model.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeMessageStore struct {
	nextID    int64
	rows      []model.Message
	previews  map[int64]string
	lastTimes map[int64]string
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{previews: make(map[int64]string), lastTimes: make(map[int64]string)}
}

func (f *fakeMessageStore) Append(ctx context.Context, m *model.Message, preview string) error {
	f.nextID++
	m.ID = f.nextID
	f.rows = append(f.rows, *m)
	f.previews[m.ChatID] = preview
	f.lastTimes[m.ChatID] = m.Time
	return nil
}

func (f *fakeMessageStore) ListByChat(ctx context.Context, chatID int64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.rows {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeBroadcaster struct {
	payloads []ws.MessagePayload
}

func (f *fakeBroadcaster) Broadcast(v any) {
	if p, ok := v.(ws.MessagePayload); ok {
		f.payloads = append(f.payloads, p)
	}
}

type fakeNotifier struct {
	calls chan struct{ title, body string }
}

func (f *fakeNotifier) Notify(ctx context.Context, title, body string, data map[string]string) {
	f.calls <- struct{ title, body string }{title, body}
}

func newTestService() (*MessageService, *fakeMessageStore, *fakeBroadcaster) {
	chats := &fakeChatStore{chats: map[int64]*model.Chat{
		1: {ID: 1, Kind: model.ChatKindDirect, Title: "Sara", Verified: true},
	}}
	msgs := newFakeMessageStore()
	hub := &fakeBroadcaster{}
	svc := NewMessageService(chats, msgs, hub, nil)
	return svc, msgs, hub
}

func TestSendAssignsSequentialIDs(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i, text := range []string{"first", "second", "third"} {
		m, err := svc.Send(ctx, 1, true, text)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), m.ID)
	}

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "third", got[2].Text)
}

func TestSendPersistsSentBroadcastsDelivered(t *testing.T) {
	svc, msgs, hub := newTestService()

	m, err := svc.Send(context.Background(), 1, true, "hello")
	require.NoError(t, err)

	assert.Equal(t, model.MessageStatusSent, m.Status)
	require.Len(t, msgs.rows, 1)
	assert.Equal(t, model.MessageStatusSent, msgs.rows[0].Status)

	require.Len(t, hub.payloads, 1)
	p := hub.payloads[0]
	assert.Equal(t, ws.EventMessage, p.Type)
	assert.Equal(t, m.ID, p.ID)
	assert.Equal(t, m.ChatID, p.ChatID)
	assert.Equal(t, "hello", p.Text)
	assert.Equal(t, model.MessageStatusDelivered, p.Status)
}

func TestSendClipsPreviewByRunes(t *testing.T) {
	svc, msgs, _ := newTestService()

	text := strings.Repeat("д", 250)
	m, err := svc.Send(context.Background(), 1, true, text)
	require.NoError(t, err)

	// Stored message keeps the full text, only the preview is clipped.
	assert.Equal(t, text, m.Text)
	preview := msgs.previews[1]
	assert.Equal(t, 200, len([]rune(preview)))
	assert.Equal(t, strings.Repeat("д", 200), preview)
}

func TestSendUsesClockForTimeLabel(t *testing.T) {
	svc, msgs, _ := newTestService()
	svc.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC)
	}

	m, err := svc.Send(context.Background(), 1, true, "morning")
	require.NoError(t, err)
	assert.Equal(t, "09:05", m.Time)
	assert.Equal(t, "09:05", msgs.lastTimes[1])
}

func TestSendTrimsText(t *testing.T) {
	svc, _, hub := newTestService()

	m, err := svc.Send(context.Background(), 1, false, "  spaced out  ")
	require.NoError(t, err)
	assert.Equal(t, "spaced out", m.Text)
	assert.Equal(t, "spaced out", hub.payloads[0].Text)
}

func TestSendUnknownChat(t *testing.T) {
	svc, msgs, hub := newTestService()

	_, err := svc.Send(context.Background(), 42, true, "hello")
	assert.ErrorIs(t, err, ErrChatNotFound)
	assert.Empty(t, msgs.rows)
	assert.Empty(t, hub.payloads)
}

func TestSendEmptyText(t *testing.T) {
	svc, msgs, hub := newTestService()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(context.Background(), 1, true, text)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Empty(t, msgs.rows)
	assert.Empty(t, hub.payloads)
}

func TestListUnknownChat(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.List(context.Background(), 42)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestSendFiresNotification(t *testing.T) {
	chats := &fakeChatStore{chats: map[int64]*model.Chat{
		1: {ID: 1, Kind: model.ChatKindDirect, Title: "Sara"},
	}}
	notifier := &fakeNotifier{calls: make(chan struct{ title, body string }, 1)}
	svc := NewMessageService(chats, newFakeMessageStore(), &fakeBroadcaster{}, notifier)

	_, err := svc.Send(context.Background(), 1, true, "ping")
	require.NoError(t, err)

	select {
	case call := <-notifier.calls:
		assert.Equal(t, "Sara", call.title)
		assert.Equal(t, "ping", call.body)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never sent")
	}
}
