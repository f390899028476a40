package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shark/internal/logger"
	"github.com/shark/internal/model"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Search returns contacts ordered by name; q filters by name or username
// substring (case-insensitive). Empty q returns everything.
func (r *ContactRepository) Search(ctx context.Context, q string) ([]model.Contact, error) {
	defer logger.DeferLogDuration("contact.Search", time.Now())()
	sql := `SELECT id, name, username, verified FROM contacts`
	args := []any{}
	if q != "" {
		sql += ` WHERE name ILIKE '%' || $1 || '%' OR username ILIKE '%' || $1 || '%'`
		args = append(args, q)
	}
	sql += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("contactRepo.Search query: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0, 16)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Username, &c.Verified); err != nil {
			return nil, fmt.Errorf("contactRepo.Search scan: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contactRepo.Search rows: %w", err)
	}
	return contacts, nil
}
