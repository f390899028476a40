package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shark/internal/logger"
	"github.com/shark/internal/model"
)

type CallLogRepository struct {
	pool *pgxpool.Pool
}

func NewCallLogRepository(pool *pgxpool.Pool) *CallLogRepository {
	return &CallLogRepository{pool: pool}
}

// List returns call logs newest first (id descending).
func (r *CallLogRepository) List(ctx context.Context) ([]model.CallLog, error) {
	defer logger.DeferLogDuration("call.List", time.Now())()
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, direction, time FROM call_logs ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("callRepo.List query: %w", err)
	}
	defer rows.Close()

	logs := make([]model.CallLog, 0, 16)
	for rows.Next() {
		var cl model.CallLog
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Type, &cl.Direction, &cl.Time); err != nil {
			return nil, fmt.Errorf("callRepo.List scan: %w", err)
		}
		logs = append(logs, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("callRepo.List rows: %w", err)
	}
	return logs, nil
}

// Create inserts a call log entry and writes the assigned id back into cl.
func (r *CallLogRepository) Create(ctx context.Context, cl *model.CallLog) error {
	defer logger.DeferLogDuration("call.Create", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO call_logs (name, type, direction, time)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		cl.Name, cl.Type, cl.Direction, cl.Time,
	).Scan(&cl.ID)
	if err != nil {
		return fmt.Errorf("callRepo.Create: %w", err)
	}
	return nil
}
