package security

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
)

type fakeEventRepo struct {
	events []*model.SecurityEvent
	err    error
}

func (f *fakeEventRepo) Create(_ context.Context, e *model.SecurityEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) List(context.Context, *uuid.UUID, model.Pagination) ([]*model.SecurityEvent, error) {
	return f.events, nil
}

func newTestService(repo *fakeEventRepo) *Service {
	logger := zerolog.Nop()
	return NewService(repo, &logger)
}

func TestLogEventSanitizesEventType(t *testing.T) {
	repo := &fakeEventRepo{}
	s := newTestService(repo)

	s.LogEvent(context.Background(), "<script>x</script>login_failed", nil)

	require.Len(t, repo.events, 1)
	assert.Equal(t, "login_failed", repo.events[0].EventType)
}

func TestLogEventAttachesUserFromContext(t *testing.T) {
	repo := &fakeEventRepo{}
	s := newTestService(repo)
	userID := uuid.New()

	ctx := WithUserAgent(WithUser(context.Background(), userID), "test-agent")
	s.LogEvent(ctx, model.SecurityEventLoginSuccess, map[string]interface{}{"email": "a@example.com"})

	require.Len(t, repo.events, 1)
	require.NotNil(t, repo.events[0].UserID)
	assert.Equal(t, userID, *repo.events[0].UserID)
	assert.Equal(t, "test-agent", repo.events[0].UserAgent)
	assert.Nil(t, repo.events[0].IPAddress)
	assert.JSONEq(t, `{"email":"a@example.com"}`, string(repo.events[0].Details))
}

func TestLogEventAnonymousUser(t *testing.T) {
	repo := &fakeEventRepo{}
	s := newTestService(repo)

	s.LogEvent(context.Background(), model.SecurityEventLoginFailed, nil)

	require.Len(t, repo.events, 1)
	assert.Nil(t, repo.events[0].UserID)
}

func TestLogEventSwallowsPersistenceFailure(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("db down")}
	s := newTestService(repo)

	assert.NotPanics(t, func() {
		s.LogEvent(context.Background(), model.SecurityEventLoginFailed, nil)
	})
}
