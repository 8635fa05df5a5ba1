package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
)

type securityEventRepository struct {
	db *sqlx.DB
}

func NewSecurityEventRepository(db *sqlx.DB) repository.SecurityEventRepository {
	return &securityEventRepository{db: db}
}

// Create appends a security event. The table is append-only; ip_address is
// left null here and filled in by infrastructure.
func (r *securityEventRepository) Create(ctx context.Context, event *model.SecurityEvent) error {
	query := `
		INSERT INTO security_events (id, user_id, event_type, event_details, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.EventType,
		event.Details,
		event.IPAddress,
		event.UserAgent,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create security event: %w", err)
	}
	return nil
}

func (r *securityEventRepository) List(ctx context.Context, userID *uuid.UUID, p model.Pagination) ([]*model.SecurityEvent, error) {
	query := `SELECT * FROM security_events WHERE 1=1`
	var args []interface{}

	if userID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", len(args)+1)
		args = append(args, *userID)
	}

	query += " ORDER BY created_at DESC"

	if p.PageSize > 0 {
		if p.Page < 1 {
			p.Page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, p.PageSize, (p.Page-1)*p.PageSize)
	}

	var events []*model.SecurityEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list security events: %w", err)
	}
	return events, nil
}
