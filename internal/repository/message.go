package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shark/internal/logger"
	"github.com/shark/internal/model"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Append inserts the message and refreshes the owning chat's preview in one
// transaction; either both land or neither does. The assigned id is written
// back into m. Returns ErrNotFound if the chat vanished under us.
func (r *MessageRepository) Append(ctx context.Context, m *model.Message, preview string) error {
	defer logger.DeferLogDuration("msg.Append", time.Now())()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("msgRepo.Append begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO messages (chat_id, mine, text, time, status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		m.ChatID, m.Mine, m.Text, m.Time, m.Status,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("msgRepo.Append insert: %w", err)
	}

	ct, err := tx.Exec(ctx,
		`UPDATE chats SET last_message = $1, last_time = $2 WHERE id = $3`,
		preview, m.Time, m.ChatID,
	)
	if err != nil {
		return fmt.Errorf("msgRepo.Append preview: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("msgRepo.Append commit: %w", err)
	}
	return nil
}

// ListByChat returns the chat's full history in ascending id order.
func (r *MessageRepository) ListByChat(ctx context.Context, chatID int64) ([]model.Message, error) {
	defer logger.DeferLogDuration("msg.ListByChat", time.Now())()
	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, mine, text, time, status
		 FROM messages WHERE chat_id = $1 ORDER BY id ASC`, chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.ListByChat query: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0, 32)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Mine, &m.Text, &m.Time, &m.Status); err != nil {
			return nil, fmt.Errorf("msgRepo.ListByChat scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("msgRepo.ListByChat rows: %w", err)
	}
	return messages, nil
}
