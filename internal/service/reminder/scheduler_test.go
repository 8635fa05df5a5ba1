package reminder

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
)

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*model.ReminderSettings
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context, userID uuid.UUID) (*model.ReminderSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.settings[userID]; ok {
		return s, nil
	}
	return &model.ReminderSettings{UserID: userID, Channel: model.ReminderChannelPush}, nil
}

func (f *fakeSettingsRepo) UpsertSettings(_ context.Context, s *model.ReminderSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[s.UserID] = s
	return nil
}

type fakeUserRepo struct {
	user *model.User
}

func (f *fakeUserRepo) Create(context.Context, *model.User) error { return nil }
func (f *fakeUserRepo) Get(context.Context, uuid.UUID) (*model.User, error) {
	return f.user, nil
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return f.user, nil
}
func (f *fakeUserRepo) Update(context.Context, *model.User) error { return nil }

type fakeBroker struct {
	mu       sync.Mutex
	messages [][]byte
}

func (f *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, payload)
	return nil
}

func (f *fakeBroker) Subscribe(context.Context, string) (<-chan []byte, error) { return nil, nil }
func (f *fakeBroker) Close() error                                             { return nil }

func (f *fakeBroker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmail) SendReminder(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeEmail) SendWelcome(context.Context, string, string) error { return nil }

func newTestScheduler(settings *fakeSettingsRepo, broker *fakeBroker, mail *fakeEmail) *Scheduler {
	logger := zerolog.Nop()
	users := &fakeUserRepo{user: &model.User{Email: "alice@example.com"}}
	return NewScheduler(settings, users, broker, mail, &logger, nil)
}

func enabledSettings(userID uuid.UUID, channel string) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[uuid.UUID]*model.ReminderSettings{
		userID: {UserID: userID, Enabled: true, ReminderTime: "08:00", Channel: channel},
	}}
}

func TestSchedulerPublishesWhenEnabled(t *testing.T) {
	userID := uuid.New()
	broker := &fakeBroker{}
	s := newTestScheduler(enabledSettings(userID, model.ReminderChannelPush), broker, &fakeEmail{})
	defer s.Stop()

	s.Schedule(userID, "Doliprane", time.Millisecond)
	require.Eventually(t, func() bool { return broker.count() == 1 },
		time.Second, 5*time.Millisecond)
	var msg model.ReminderMessage
	require.NoError(t, json.Unmarshal(broker.messages[0], &msg))
	assert.Equal(t, userID, msg.UserID)
	assert.Equal(t, "Doliprane", msg.MedicationName)
}

func TestSchedulerSkipsWhenDisabledAtFireTime(t *testing.T) {
	userID := uuid.New()
	settings := &fakeSettingsRepo{settings: map[uuid.UUID]*model.ReminderSettings{
		userID: {UserID: userID, Enabled: false, Channel: model.ReminderChannelPush},
	}}
	broker := &fakeBroker{}
	s := newTestScheduler(settings, broker, &fakeEmail{})

	s.Schedule(userID, "Doliprane", time.Millisecond)
	s.Stop()

	assert.Zero(t, broker.count(), "disabled reminders must not dispatch")
}

func TestSchedulerCancelPreventsDispatch(t *testing.T) {
	userID := uuid.New()
	broker := &fakeBroker{}
	s := newTestScheduler(enabledSettings(userID, model.ReminderChannelPush), broker, &fakeEmail{})

	s.Schedule(userID, "Doliprane", 50*time.Millisecond)
	s.Cancel(userID, "Doliprane")
	s.Stop()

	assert.Zero(t, broker.count())
}

func TestSchedulerReplacesPendingTimer(t *testing.T) {
	userID := uuid.New()
	broker := &fakeBroker{}
	s := newTestScheduler(enabledSettings(userID, model.ReminderChannelPush), broker, &fakeEmail{})

	s.Schedule(userID, "Doliprane", time.Hour)
	s.Schedule(userID, "Doliprane", time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, broker.count(), "rescheduling must replace, not duplicate")
}

func TestSchedulerEmailChannel(t *testing.T) {
	userID := uuid.New()
	mail := &fakeEmail{}
	broker := &fakeBroker{}
	s := newTestScheduler(enabledSettings(userID, model.ReminderChannelEmail), broker, mail)
	defer s.Stop()

	s.Schedule(userID, "Doliprane", time.Millisecond)
	require.Eventually(t, func() bool {
		mail.mu.Lock()
		defer mail.mu.Unlock()
		return len(mail.sent) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "alice@example.com", mail.sent[0])
	assert.Zero(t, broker.count())
}

func TestSchedulerStopIsIdempotentAndBlocksNewWork(t *testing.T) {
	userID := uuid.New()
	broker := &fakeBroker{}
	s := newTestScheduler(enabledSettings(userID, model.ReminderChannelPush), broker, &fakeEmail{})

	s.Stop()
	s.Schedule(userID, "Doliprane", time.Millisecond)
	s.Stop()

	assert.Zero(t, broker.count())
}
