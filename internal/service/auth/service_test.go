package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/service/security"
	pkgauth "github.com/Madumtv/healthcentral-sub001/pkg/auth"
	"github.com/Madumtv/healthcentral-sub001/pkg/ratelimit"
	pkgsecurity "github.com/Madumtv/healthcentral-sub001/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (f *fakeUserRepo) Update(context.Context, *model.User) error { return nil }

type fakeMailer struct {
	welcomed []string
	err      error
}

func (f *fakeMailer) SendWelcome(_ context.Context, to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.welcomed = append(f.welcomed, to)
	return nil
}

type nullEventRepo struct{}

func (nullEventRepo) Create(context.Context, *model.SecurityEvent) error { return nil }
func (nullEventRepo) List(context.Context, *uuid.UUID, model.Pagination) ([]*model.SecurityEvent, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *ratelimit.Limiter, *fakeMailer) {
	t.Helper()
	repo := &fakeUserRepo{users: make(map[string]*model.User)}
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["alice@example.com"] = &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Status:       model.UserStatusActive,
	}

	logger := zerolog.Nop()
	events := security.NewService(nullEventRepo{}, &logger)
	jwtSvc := pkgauth.NewJWTService(pkgauth.Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh",
		Expiry:        time.Hour,
		RefreshExpiry: time.Hour,
	})
	limiter := ratelimit.New(3, time.Minute)
	mailer := &fakeMailer{}
	return NewService(repo, jwtSvc, limiter, events, mailer, &logger, nil), repo, limiter, mailer
}

func TestLoginSuccessReturnsTokens(t *testing.T) {
	s, _, _, _ := newTestService(t)

	tokens, err := s.Login(context.Background(), "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := s.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	s, _, _, _ := newTestService(t)

	_, err := s.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginRateLimitedAfterRepeatedFailures(t *testing.T) {
	s, _, _, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := s.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	}

	// Fourth attempt hits the limiter even with the right password
	_, err := s.Login(context.Background(), "alice@example.com", "correct-horse")
	assert.ErrorIs(t, err, model.ErrTooManyAttempts)
}

func TestLoginSuccessClearsAttemptWindow(t *testing.T) {
	s, _, _, _ := newTestService(t)

	_, _ = s.Login(context.Background(), "alice@example.com", "wrong")
	_, _ = s.Login(context.Background(), "alice@example.com", "wrong")

	_, err := s.Login(context.Background(), "alice@example.com", "correct-horse")
	require.NoError(t, err)

	// Window cleared: failures can start over without tripping immediately
	_, err = s.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginLimiterKeyIsCaseInsensitive(t *testing.T) {
	s, _, limiter, _ := newTestService(t)

	_, _ = s.Login(context.Background(), "Alice@Example.com", "wrong")
	assert.Equal(t, 2, limiter.Remaining("login:alice@example.com"))
}

func TestLoginUnknownUserCountsAgainstWindow(t *testing.T) {
	s, _, _, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := s.Login(context.Background(), "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	}
	_, err := s.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, model.ErrTooManyAttempts)
}

func TestRegisterHashesPassword(t *testing.T) {
	s, repo, _, _ := newTestService(t)

	user, err := s.Register(context.Background(), &model.RegisterRequest{
		Email:     "Bob@Example.com",
		Password:  "long-enough-pw",
		FirstName: "Bob",
		LastName:  "Durand",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.NotEqual(t, "long-enough-pw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long-enough-pw")))
	assert.Contains(t, repo.users, "bob@example.com")
}

func TestRegisterSendsWelcomeEmail(t *testing.T) {
	s, _, _, mailer := newTestService(t)

	_, err := s.Register(context.Background(), &model.RegisterRequest{
		Email:     "bob@example.com",
		Password:  "long-enough-pw",
		FirstName: "Bob",
		LastName:  "Durand",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@example.com"}, mailer.welcomed)
}

func TestRegisterSucceedsWhenWelcomeEmailFails(t *testing.T) {
	s, repo, _, mailer := newTestService(t)
	mailer.err = errors.New("smtp down")

	user, err := s.Register(context.Background(), &model.RegisterRequest{
		Email:     "carol@example.com",
		Password:  "long-enough-pw",
		FirstName: "Carol",
		LastName:  "Petit",
	})
	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.Contains(t, repo.users, "carol@example.com")
}

func TestRegisterRejectsPolicyViolations(t *testing.T) {
	s, repo, _, mailer := newTestService(t)

	_, err := s.Register(context.Background(), &model.RegisterRequest{
		Email:     "dave@example.com",
		Password:  "short",
		FirstName: "Dave",
		LastName:  "Leroy",
	})
	assert.ErrorIs(t, err, pkgsecurity.ErrPasswordTooShort)
	assert.NotContains(t, repo.users, "dave@example.com")
	assert.Empty(t, mailer.welcomed)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s, _, _, _ := newTestService(t)

	tokens, err := s.Login(context.Background(), "alice@example.com", "correct-horse")
	require.NoError(t, err)

	refreshed, err := s.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = s.RefreshToken(context.Background(), tokens.AccessToken)
	assert.Error(t, err, "access token must not pass as a refresh token")
}
