package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockTokenPrefix mock tokens are this prefix followed by the user id
const MockTokenPrefix = "mock-jwt-token-"

// AuthService 认证服务
type AuthService struct {
	userRepo *repository.UserRepository
	sessions session.Store
	cfg      config.AuthConfig
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, deps Deps) *AuthService {
	deps.defaults()
	return &AuthService{
		userRepo: userRepo,
		sessions: deps.Sessions,
		cfg:      deps.Config.Auth,
		logger:   deps.Logger.Named("auth"),
		now:      deps.Now,
	}
}

// Claims carried by jwt-mode tokens
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Login checks the credential pair against the seeded users
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized("Invalid credentials")
	}
	user.Password = ""
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) issueToken(user *entity.User) (string, error) {
	if s.cfg.TokenMode != config.TokenModeJWT {
		return MockTokenPrefix + user.ID, nil
	}
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL())),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a bearer token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, unauthorized("Unauthorized")
	}
	revoked, err := s.sessions.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, unauthorized("Token has been revoked")
	}

	var userID string
	if s.cfg.TokenMode == config.TokenModeJWT {
		claims, err := s.parseJWT(token)
		if err != nil {
			return nil, unauthorized("Invalid or expired token")
		}
		userID = claims.UserID
	} else {
		if !strings.HasPrefix(token, MockTokenPrefix) {
			return nil, unauthorized("Unauthorized")
		}
		userID = strings.TrimPrefix(token, MockTokenPrefix)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, lookup(err, "User")
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) parseJWT(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Logout revokes the token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.Authenticate(ctx, token); err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, token, s.tokenTTL()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) ListPlants(ctx context.Context) []entity.Plant {
	return s.userRepo.ListPlants()
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.cfg.TokenTTL <= 0 {
		return 24 * time.Hour
	}
	return s.cfg.TokenTTL
}
