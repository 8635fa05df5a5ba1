package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
)

type reminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// GetSettings returns the user's reminder settings, or defaults (disabled,
// push channel) when none have been saved yet.
func (r *reminderRepository) GetSettings(ctx context.Context, userID uuid.UUID) (*model.ReminderSettings, error) {
	query := `SELECT * FROM reminder_settings WHERE user_id = $1`
	var settings model.ReminderSettings
	err := r.db.GetContext(ctx, &settings, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.ReminderSettings{
			UserID:       userID,
			Enabled:      false,
			ReminderTime: "08:00",
			Channel:      model.ReminderChannelPush,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder settings: %w", err)
	}
	return &settings, nil
}

func (r *reminderRepository) UpsertSettings(ctx context.Context, settings *model.ReminderSettings) error {
	query := `
		INSERT INTO reminder_settings (user_id, enabled, reminder_time, channel, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET enabled = EXCLUDED.enabled,
			reminder_time = EXCLUDED.reminder_time,
			channel = EXCLUDED.channel,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		settings.UserID,
		settings.Enabled,
		settings.ReminderTime,
		settings.Channel,
	)
	if err != nil {
		return fmt.Errorf("failed to save reminder settings: %w", err)
	}
	return nil
}
