package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/email"
	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
	"github.com/Madumtv/healthcentral-sub001/pkg/messaging"
	"github.com/Madumtv/healthcentral-sub001/pkg/metrics"
)

// Channel reminders are published on.
const BrokerChannel = "reminders"

const dispatchTimeout = 10 * time.Second

// Scheduler arms one-shot medication reminders. A reminder that fires
// re-checks the user's settings first, so disabling reminders between
// scheduling and firing suppresses delivery. Superseding a pending reminder
// for the same user and medication replaces its timer.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
	closed bool

	settings repository.ReminderRepository
	users    repository.UserRepository
	broker   messaging.Broker
	email    email.Service
	logger   *zerolog.Logger
	metrics  *metrics.Metrics
}

func NewScheduler(settings repository.ReminderRepository, users repository.UserRepository,
	broker messaging.Broker, emailSvc email.Service, logger *zerolog.Logger, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		timers:   make(map[string]*time.Timer),
		settings: settings,
		users:    users,
		broker:   broker,
		email:    emailSvc,
		logger:   logger,
		metrics:  m,
	}
}

func timerKey(userID uuid.UUID, medicationName string) string {
	return userID.String() + "|" + medicationName
}

// Schedule arms a one-shot reminder for medicationName after delay.
func (s *Scheduler) Schedule(userID uuid.UUID, medicationName string, delay time.Duration) {
	key := timerKey(userID, medicationName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.timers[key]; ok {
		if t.Stop() {
			s.wg.Done()
		}
	}

	s.wg.Add(1)
	s.timers[key] = time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		s.fire(userID, medicationName)
	})

	if s.metrics != nil {
		s.metrics.RemindersScheduled.Inc()
	}
}

// Cancel drops a pending reminder if one exists.
func (s *Scheduler) Cancel(userID uuid.UUID, medicationName string) {
	key := timerKey(userID, medicationName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.timers, key)
	}
}

func (s *Scheduler) fire(userID uuid.UUID, medicationName string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		s.skip("settings_unavailable")
		s.logger.Error().Err(err).Stringer("user_id", userID).Msg("reminder settings lookup failed")
		return
	}
	if !settings.Enabled {
		s.skip("disabled")
		return
	}

	msg := &model.ReminderMessage{
		UserID:         userID,
		MedicationName: medicationName,
		FiredAt:        time.Now(),
	}

	switch settings.Channel {
	case model.ReminderChannelEmail:
		user, err := s.users.Get(ctx, userID)
		if err != nil {
			s.skip("user_unavailable")
			s.logger.Error().Err(err).Stringer("user_id", userID).Msg("reminder user lookup failed")
			return
		}
		if err := s.email.SendReminder(ctx, user.Email, medicationName); err != nil {
			s.skip("email_failed")
			s.logger.Error().Err(err).Stringer("user_id", userID).Msg("reminder email failed")
			return
		}
		s.dispatched(model.ReminderChannelEmail)
	default:
		if err := s.broker.Publish(ctx, BrokerChannel, msg); err != nil {
			s.skip("publish_failed")
			s.logger.Error().Err(err).Stringer("user_id", userID).Msg("reminder publish failed")
			return
		}
		s.dispatched(model.ReminderChannelPush)
	}
}

func (s *Scheduler) skip(reason string) {
	if s.metrics != nil {
		s.metrics.RemindersSkipped.WithLabelValues(reason).Inc()
	}
}

func (s *Scheduler) dispatched(channel string) {
	if s.metrics != nil {
		s.metrics.RemindersDispatched.WithLabelValues(channel).Inc()
	}
}

// Stop cancels all pending reminders and waits for in-flight dispatches.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.closed = true
	for key, t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.timers, key)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
