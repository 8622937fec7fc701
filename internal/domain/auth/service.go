package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"atrium/internal/domain"
	"atrium/internal/pkg/jwt"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type LoginResult struct {
	User        *domain.User
	AccessToken string
	ExpiresAt   time.Time
}

type Service struct {
	users  *UserRepository
	jwt    *jwt.Service
	logger *slog.Logger
	now    func() time.Time
}

func NewService(users *UserRepository, jwtService *jwt.Service, logger *slog.Logger) *Service {
	return &Service{users: users, jwt: jwtService, logger: logger, now: time.Now}
}

// Login checks the password and issues an access token. Repeated failures
// lock the account for a while.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !user.Active {
		return nil, ErrAccountDisabled
	}
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		failed := user.FailedLoginAttempts + 1
		updates := map[string]any{"failed_login_attempts": failed}
		if failed >= maxFailedLoginAttempts {
			updates["locked_until"] = now.Add(lockoutDuration)
		}
		if err := s.users.UpdateLoginState(ctx, user.ID, updates); err != nil {
			return nil, err
		}
		if failed >= maxFailedLoginAttempts {
			s.logger.Warn("account locked after failed logins", "user_id", user.ID)
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		err := s.users.UpdateLoginState(ctx, user.ID, map[string]any{
			"failed_login_attempts": 0,
			"locked_until":          nil,
		})
		if err != nil {
			return nil, err
		}
		user.FailedLoginAttempts = 0
		user.LockedUntil = nil
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role.String())
	return &LoginResult{User: user, AccessToken: token, ExpiresAt: now.Add(s.jwt.TTL())}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CreateUser stores a new account with a bcrypt password hash.
func (s *Service) CreateUser(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.Invalid("invalid role %d", role)
	}
	if len(password) < 8 {
		return nil, domain.Invalid("password must have at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
