package reminder

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
	"github.com/Madumtv/healthcentral-sub001/pkg/errors"
)

var reminderTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Service interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*model.ReminderSettings, error)
	UpdateSettings(ctx context.Context, settings *model.ReminderSettings) error
}

type service struct {
	repo repository.ReminderRepository
}

func NewService(repo repository.ReminderRepository) Service {
	return &service{repo: repo}
}

func (s *service) GetSettings(ctx context.Context, userID uuid.UUID) (*model.ReminderSettings, error) {
	return s.repo.GetSettings(ctx, userID)
}

func (s *service) UpdateSettings(ctx context.Context, settings *model.ReminderSettings) error {
	if !reminderTimeRe.MatchString(settings.ReminderTime) {
		return errors.BadRequest("reminder_time must be HH:MM", nil)
	}
	switch settings.Channel {
	case model.ReminderChannelPush, model.ReminderChannelEmail:
	default:
		return errors.BadRequest(fmt.Sprintf("unknown reminder channel %q", settings.Channel), nil)
	}
	return s.repo.UpsertSettings(ctx, settings)
}
