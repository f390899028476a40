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

// SettingsRepository works with the single user_settings row seeded at startup.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	defer logger.DeferLogDuration("settings.Get", time.Now())()
	s := &model.Settings{}
	err := r.pool.QueryRow(ctx,
		`SELECT screen_lock, read_receipts, link_preview, safety_alerts
		 FROM user_settings ORDER BY id ASC LIMIT 1`,
	).Scan(&s.ScreenLock, &s.ReadReceipts, &s.LinkPreview, &s.SafetyAlerts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("settingsRepo.Get: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *model.Settings) error {
	defer logger.DeferLogDuration("settings.Update", time.Now())()
	ct, err := r.pool.Exec(ctx,
		`UPDATE user_settings SET screen_lock = $1, read_receipts = $2, link_preview = $3, safety_alerts = $4
		 WHERE id = (SELECT MIN(id) FROM user_settings)`,
		s.ScreenLock, s.ReadReceipts, s.LinkPreview, s.SafetyAlerts,
	)
	if err != nil {
		return fmt.Errorf("settingsRepo.Update: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
