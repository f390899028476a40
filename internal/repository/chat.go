package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shark/internal/logger"
	"github.com/shark/internal/model"
)

var ErrNotFound = errors.New("not found")

// NewChatLastMessage is the preview text a chat carries until a message lands.
const NewChatLastMessage = "Chat started."

// NewChatLastTime is the initial preview time label.
const NewChatLastTime = "Now"

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*model.Chat, error) {
	defer logger.DeferLogDuration("chat.GetByID", time.Now())()
	c := &model.Chat{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, kind, title, verified, last_message, last_time, unread
		 FROM chats WHERE id = $1`, id,
	).Scan(&c.ID, &c.Kind, &c.Title, &c.Verified, &c.LastMessage, &c.LastTime, &c.Unread)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("chatRepo.GetByID: %w", err)
	}
	return c, nil
}

// List returns all chats, newest-created first (id descending).
func (r *ChatRepository) List(ctx context.Context) ([]model.Chat, error) {
	defer logger.DeferLogDuration("chat.List", time.Now())()
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, title, verified, last_message, last_time, unread
		 FROM chats ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.List query: %w", err)
	}
	defer rows.Close()

	chats := make([]model.Chat, 0, 16)
	for rows.Next() {
		var c model.Chat
		if err := rows.Scan(&c.ID, &c.Kind, &c.Title, &c.Verified, &c.LastMessage, &c.LastTime, &c.Unread); err != nil {
			return nil, fmt.Errorf("chatRepo.List scan: %w", err)
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chatRepo.List rows: %w", err)
	}
	return chats, nil
}

func (r *ChatRepository) findByKindTitle(ctx context.Context, kind model.ChatKind, title string) (*model.Chat, error) {
	c := &model.Chat{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, kind, title, verified, last_message, last_time, unread
		 FROM chats WHERE kind = $1 AND LOWER(title) = LOWER($2)`, kind, title,
	).Scan(&c.ID, &c.Kind, &c.Title, &c.Verified, &c.LastMessage, &c.LastTime, &c.Unread)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("chatRepo.findByKindTitle: %w", err)
	}
	return c, nil
}

// GetOrCreate returns the chat with the given kind and title (case-insensitive
// match), creating it with the default preview when it does not exist yet.
func (r *ChatRepository) GetOrCreate(ctx context.Context, kind model.ChatKind, title string, verified bool) (*model.Chat, error) {
	defer logger.DeferLogDuration("chat.GetOrCreate", time.Now())()
	c, err := r.findByKindTitle(ctx, kind, title)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	c = &model.Chat{
		Kind:        kind,
		Title:       title,
		Verified:    verified,
		LastMessage: NewChatLastMessage,
		LastTime:    NewChatLastTime,
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO chats (kind, title, verified, last_message, last_time, unread)
		 VALUES ($1, $2, $3, $4, $5, 0) RETURNING id`,
		c.Kind, c.Title, c.Verified, c.LastMessage, c.LastTime,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.GetOrCreate insert: %w", err)
	}
	return c, nil
}
