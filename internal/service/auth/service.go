package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
	"github.com/Madumtv/healthcentral-sub001/internal/service/security"
	"github.com/Madumtv/healthcentral-sub001/pkg/auth"
	"github.com/Madumtv/healthcentral-sub001/pkg/metrics"
	"github.com/Madumtv/healthcentral-sub001/pkg/ratelimit"
	pkgsecurity "github.com/Madumtv/healthcentral-sub001/pkg/security"
)

const bcryptCost = 12

// WelcomeMailer sends the post-registration email.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, firstName string) error
}

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   pkgsecurity.PasswordHasher
	limiter  *ratelimit.Limiter
	events   *security.Service
	mailer   WelcomeMailer
	logger   *zerolog.Logger
	metrics  *metrics.Metrics
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService,
	limiter *ratelimit.Limiter, events *security.Service, mailer WelcomeMailer,
	logger *zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   pkgsecurity.NewBcryptHasher(bcryptCost),
		limiter:  limiter,
		events:   events,
		mailer:   mailer,
		logger:   logger,
		metrics:  m,
	}
}

func loginKey(email string) string {
	return "login:" + strings.ToLower(strings.TrimSpace(email))
}

// Login checks the sliding-window limiter before touching the store. A
// successful login clears the email's attempt window.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	key := loginKey(email)
	if s.limiter.IsLimited(key) {
		if s.metrics != nil {
			s.metrics.RateLimited.Inc()
		}
		s.events.LogEvent(ctx, model.SecurityEventLoginLimited, map[string]interface{}{"email": email})
		return nil, model.ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.recordFailure(ctx, email)
		return nil, model.ErrInvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		s.recordFailure(ctx, email)
		return nil, model.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, model.ErrInvalidCredentials
	}

	s.limiter.Clear(key)

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	}
	s.events.LogEvent(security.WithUser(ctx, user.ID), model.SecurityEventLoginSuccess,
		map[string]interface{}{"email": user.Email})

	return tokens, nil
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
	}
	s.events.LogEvent(ctx, model.SecurityEventLoginFailed, map[string]interface{}{"email": email})
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	user := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.events.LogEvent(security.WithUser(ctx, user.ID), model.SecurityEventRegister,
		map[string]interface{}{"email": user.Email})

	// Welcome email is best effort; a mail outage must not fail registration
	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, user.Email, user.FirstName); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed")
		}
	}
	return user, nil
}

func (s *Service) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	return s.jwtSvc.ValidateToken(token)
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokens(user)
}

func (s *Service) generateTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}
