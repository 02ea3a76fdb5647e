package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cublex/internal/common"
	"cublex/internal/common/security"
	"cublex/internal/domain/model"
	"cublex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AuthService struct {
	userRepo repository.UserRepository
	sessions *SessionManager
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, sessions *SessionManager, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

type RegisterRequest struct {
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Password          string     `json:"password"`
	MinecraftUsername string     `json:"minecraftUsername"`
	Role              model.Role `json:"-"` // Never taken from the client
}

type LoginRequest struct {
	Identifier string `json:"username"` // Can be username or email
	Password   string `json:"password"`
}

type AuthResult struct {
	User    *model.User
	Session *model.Session
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.MinecraftUsername = strings.TrimSpace(req.MinecraftUsername)

	switch {
	case req.Username == "":
		return nil, common.Validationf("username is required")
	case req.Email == "":
		return nil, common.Validationf("email is required")
	case req.Password == "":
		return nil, common.Validationf("password is required")
	}

	role := req.Role
	if role == "" {
		role = model.RoleStandard
	}
	if !role.Valid() {
		return nil, common.Validationf("unknown role %q", role)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			return nil, common.Validationf("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:                uuid.NewString(),
		Username:          req.Username,
		Email:             req.Email,
		HashedPassword:    hashedPassword,
		Role:              role,
		MinecraftUsername: req.MinecraftUsername,
		CreatedAt:         s.now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrDuplicateIdentity on conflict
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.sessions.Start(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")
	user.HashedPassword = "" // Clear password before returning
	return &AuthResult{User: user, Session: session}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		security.BurnPasswordCheck(req.Password)
		s.logger.Info().Msg("login rejected")
		return nil, common.ErrInvalidCredentials
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		s.logger.Info().Str("user_id", user.ID).Msg("login rejected")
		return nil, common.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now

	session, err := s.sessions.Start(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	user.HashedPassword = ""
	return &AuthResult{User: user, Session: session}, nil
}

// Logout destroys the session bound to token. Unknown or already destroyed
// tokens are accepted silently.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Current returns the identity bound to token, or nil for anonymous callers.
func (s *AuthService) Current(ctx context.Context, token string) (*model.SessionUser, error) {
	session, err := s.sessions.Resolve(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

// EnsureAdmin creates an admin account unless the username or email is taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil
	}
	result, err := s.Register(ctx, RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil
		}
		return err
	}
	// Seeding needs no live session.
	return s.sessions.Destroy(ctx, result.Session.Token)
}
