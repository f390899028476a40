package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shark/internal/model"
	"github.com/shark/internal/repository"
	"github.com/shark/internal/service"
)

type memChatStore struct {
	chats map[int64]*model.Chat
}

func (s *memChatStore) GetByID(ctx context.Context, id int64) (*model.Chat, error) {
	c, ok := s.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type memMessageStore struct {
	nextID int64
	rows   []model.Message
}

func (s *memMessageStore) Append(ctx context.Context, m *model.Message, preview string) error {
	s.nextID++
	m.ID = s.nextID
	s.rows = append(s.rows, *m)
	return nil
}

func (s *memMessageStore) ListByChat(ctx context.Context, chatID int64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.rows {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(v any) {}

func newMessageRouter() http.Handler {
	chats := &memChatStore{chats: map[int64]*model.Chat{
		1: {ID: 1, Kind: model.ChatKindDirect, Title: "Sara"},
	}}
	svc := service.NewMessageService(chats, &memMessageStore{}, noopBroadcaster{}, nil)
	h := NewMessageHandler(svc)

	r := chi.NewRouter()
	r.Get("/chats/{chatId}/messages", h.GetMessages)
	r.Post("/chats/{chatId}/messages", h.SendMessage)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSendMessageOK(t *testing.T) {
	r := newMessageRouter()

	rec := doJSON(t, r, http.MethodPost, "/chats/1/messages", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var m model.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, int64(1), m.ChatID)
	assert.True(t, m.Mine, "mine defaults to true")
	assert.Equal(t, model.MessageStatusSent, m.Status)
}

func TestSendMessageErrors(t *testing.T) {
	r := newMessageRouter()

	cases := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"non-numeric chat id", "/chats/abc/messages", `{"text":"hi"}`, http.StatusBadRequest, "invalid chat id"},
		{"unknown chat", "/chats/42/messages", `{"text":"hi"}`, http.StatusNotFound, "chat not found"},
		{"blank text", "/chats/1/messages", `{"text":"   "}`, http.StatusBadRequest, "text required"},
		{"malformed body", "/chats/1/messages", `{"text":`, http.StatusBadRequest, "invalid body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.wantCode, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantErr, resp["error"])
		})
	}
}

func TestGetMessagesErrors(t *testing.T) {
	r := newMessageRouter()

	rec := doJSON(t, r, http.MethodGet, "/chats/nope/messages", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/chats/42/messages", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMessagesReturnsHistoryInOrder(t *testing.T) {
	r := newMessageRouter()

	for _, text := range []string{"one", "two", "three"} {
		rec := doJSON(t, r, http.MethodPost, "/chats/1/messages", `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, r, http.MethodGet, "/chats/1/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []model.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "three", msgs[2].Text)
}
