package security

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
	"github.com/Madumtv/healthcentral-sub001/pkg/sanitize"
)

type contextKey string

// Context keys populated by the HTTP middleware.
const (
	ContextUserID    contextKey = "user_id"
	ContextUserAgent contextKey = "user_agent"
)

// WithUser returns a context carrying the authenticated user's id.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextUserID, userID)
}

// WithUserAgent returns a context carrying the request's user agent.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, ContextUserAgent, ua)
}

// Service writes the security audit trail. Logging is best effort: no failure
// here may ever reach a caller.
type Service struct {
	repo   repository.SecurityEventRepository
	logger *zerolog.Logger
}

func NewService(repo repository.SecurityEventRepository, logger *zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogEvent records a security-relevant action. The event type is sanitized,
// the user id is taken from the context when present, and ip_address stays
// null at this layer. Persistence errors are logged and swallowed.
func (s *Service) LogEvent(ctx context.Context, eventType string, details map[string]interface{}) {
	event := &model.SecurityEvent{
		ID:        uuid.New(),
		EventType: sanitize.StripTags(eventType),
		CreatedAt: time.Now(),
	}

	if userID, ok := ctx.Value(ContextUserID).(uuid.UUID); ok {
		event.UserID = &userID
	}
	if ua, ok := ctx.Value(ContextUserAgent).(string); ok {
		event.UserAgent = ua
	}

	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			s.logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal event details")
		} else {
			event.Details = payload
		}
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to record security event")
	}
}

// ListEvents exposes the trail for the admin surface.
func (s *Service) ListEvents(ctx context.Context, userID *uuid.UUID, p model.Pagination) ([]*model.SecurityEvent, error) {
	return s.repo.List(ctx, userID, p)
}
