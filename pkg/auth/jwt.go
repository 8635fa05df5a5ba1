package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type JWTService interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(token string) (*Claims, error)
	ValidateRefreshToken(token string) (*Claims, error)
}

type Config struct {
	Secret        string
	RefreshSecret string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type jwtService struct {
	cfg Config
}

func NewJWTService(cfg Config) JWTService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 24 * time.Hour
	}
	if cfg.RefreshExpiry <= 0 {
		cfg.RefreshExpiry = 7 * 24 * time.Hour
	}
	return &jwtService{cfg: cfg}
}

func (s *jwtService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(userID, email, s.cfg.Expiry, s.cfg.Secret)
}

func (s *jwtService) GenerateRefreshToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(userID, email, s.cfg.RefreshExpiry, s.cfg.RefreshSecret)
}

func (s *jwtService) sign(userID uuid.UUID, email string, expiry time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *jwtService) ValidateToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.cfg.Secret)
}

func (s *jwtService) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.cfg.RefreshSecret)
}

func (s *jwtService) parse(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
