package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shark/internal/model"
)

func TestAppendUpdatesChatPreview(t *testing.T) {
	pool := newTestPool(t)
	chats := NewChatRepository(pool)
	msgs := NewMessageRepository(pool)
	ctx := context.Background()

	chat, err := chats.GetOrCreate(ctx, model.ChatKindDirect, "Sara", true)
	require.NoError(t, err)

	m := &model.Message{ChatID: chat.ID, Mine: true, Text: "hello there", Time: "21:30", Status: model.MessageStatusSent}
	require.NoError(t, msgs.Append(ctx, m, "hello there"))
	assert.Greater(t, m.ID, int64(0))

	got, err := chats.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.LastMessage)
	assert.Equal(t, "21:30", got.LastTime)

	history, err := msgs.ListByChat(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, *m, history[0])
}

func TestAppendMissingChatLeavesNothing(t *testing.T) {
	pool := newTestPool(t)
	msgs := NewMessageRepository(pool)
	ctx := context.Background()

	m := &model.Message{ChatID: 9999, Mine: true, Text: "into the void", Time: "21:30", Status: model.MessageStatusSent}
	err := msgs.Append(ctx, m, "into the void")
	require.Error(t, err)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM messages").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestDeleteChatCascadesToMessages(t *testing.T) {
	pool := newTestPool(t)
	chats := NewChatRepository(pool)
	msgs := NewMessageRepository(pool)
	ctx := context.Background()

	chat, err := chats.GetOrCreate(ctx, model.ChatKindDirect, "Mehdi", false)
	require.NoError(t, err)
	m := &model.Message{ChatID: chat.ID, Mine: false, Text: "bye", Time: "18:07", Status: model.MessageStatusSent}
	require.NoError(t, msgs.Append(ctx, m, "bye"))

	_, err = pool.Exec(ctx, "DELETE FROM chats WHERE id = $1", chat.ID)
	require.NoError(t, err)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM messages").Scan(&count))
	assert.Equal(t, 0, count)
}
