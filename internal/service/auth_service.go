package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/repository"
	"github.com/arcdefender/arc-defender/internal/telemetry"
	"github.com/arcdefender/arc-defender/internal/token"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type AuthService struct {
	users  UserStore
	tokens *token.Manager
	cost   int
	logger *zap.Logger
}

func NewAuthService(users UserStore, tokens *token.Manager, bcryptCost int, logger *zap.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, cost: bcryptCost, logger: logger}
}

// Register stores a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return badRequest("name, email and password are required")
	}
	if len(req.Password) > maxPasswordBytes {
		return badRequest("password must be at most 72 bytes")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		telemetry.AuthAttempts.WithLabelValues("register", "conflict").Inc()
		return conflict("User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			telemetry.AuthAttempts.WithLabelValues("register", "conflict").Inc()
			return conflict("User already exists")
		}
		return err
	}

	telemetry.AuthAttempts.WithLabelValues("register", "success").Inc()
	s.logger.Info("user registered", zap.String("id", u.ID.String()))
	return nil
}

// Login checks the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, badRequest("email and password are required")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			telemetry.AuthAttempts.WithLabelValues("login", "unknown_user").Inc()
			return nil, notFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		telemetry.AuthAttempts.WithLabelValues("login", "bad_password").Inc()
		return nil, unauthorized("Invalid password")
	}

	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	telemetry.AuthAttempts.WithLabelValues("login", "success").Inc()
	return &model.LoginResponse{
		Message: "Login successful!",
		Token:   tok,
		User:    u.ToInfo(),
	}, nil
}

// Authenticate verifies a bearer token and loads the user it was issued to.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*model.User, error) {
	if bearer == "" {
		return nil, unauthorized("missing token")
	}
	claims, err := s.tokens.Verify(bearer)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, unauthorized("invalid or expired token")
	}
	id, err := claims.ID()
	if err != nil {
		return nil, unauthorized("invalid or expired token")
	}

	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// ResetPassword replaces the password of an authenticated user after
// checking the current one. A wrong current password leaves the stored hash
// untouched.
func (s *AuthService) ResetPassword(ctx context.Context, u *model.User, req *model.ResetPasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest("currentPassword and newPassword are required")
	}
	if len(req.NewPassword) > maxPasswordBytes {
		return badRequest("password must be at most 72 bytes")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		telemetry.AuthAttempts.WithLabelValues("reset_password", "bad_password").Inc()
		return badRequest("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("User not found")
		}
		return err
	}

	telemetry.AuthAttempts.WithLabelValues("reset_password", "success").Inc()
	s.logger.Info("password changed", zap.String("id", u.ID.String()))
	return nil
}
