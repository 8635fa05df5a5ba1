package reminder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
)

func TestUpdateSettingsValidatesTime(t *testing.T) {
	repo := &fakeSettingsRepo{settings: make(map[uuid.UUID]*model.ReminderSettings)}
	s := NewService(repo)

	err := s.UpdateSettings(context.Background(), &model.ReminderSettings{
		UserID:       uuid.New(),
		ReminderTime: "25:00",
		Channel:      model.ReminderChannelPush,
	})
	assert.Error(t, err)

	err = s.UpdateSettings(context.Background(), &model.ReminderSettings{
		UserID:       uuid.New(),
		ReminderTime: "8am",
		Channel:      model.ReminderChannelPush,
	})
	assert.Error(t, err)
}

func TestUpdateSettingsValidatesChannel(t *testing.T) {
	repo := &fakeSettingsRepo{settings: make(map[uuid.UUID]*model.ReminderSettings)}
	s := NewService(repo)

	err := s.UpdateSettings(context.Background(), &model.ReminderSettings{
		UserID:       uuid.New(),
		ReminderTime: "08:00",
		Channel:      "pigeon",
	})
	assert.Error(t, err)
}

func TestUpdateSettingsPersistsValidInput(t *testing.T) {
	repo := &fakeSettingsRepo{settings: make(map[uuid.UUID]*model.ReminderSettings)}
	s := NewService(repo)
	userID := uuid.New()

	err := s.UpdateSettings(context.Background(), &model.ReminderSettings{
		UserID:       userID,
		Enabled:      true,
		ReminderTime: "21:30",
		Channel:      model.ReminderChannelEmail,
	})
	require.NoError(t, err)

	got, err := s.GetSettings(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, "21:30", got.ReminderTime)
}
