package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"restoapi/internal/auth"
	"restoapi/internal/mail"
	"restoapi/internal/model"
	"restoapi/internal/repository"
)

const resetTokenTTL = time.Hour

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// TokenIssuer signs access tokens for users.
type TokenIssuer interface {
	Issue(u *model.User) (string, error)
}

// AuthService covers registration, login and password recovery.
type AuthService interface {
	// Register creates a customer account. The role is never taken from input.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	// ForgotPassword always succeeds for unknown emails so callers cannot probe accounts.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdateRole(ctx context.Context, userID string, role model.Role) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	mailer   mail.Mailer
	resetURL string
	log      *slog.Logger
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, mailer mail.Mailer, resetURL string, log *slog.Logger) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: strings.TrimRight(resetURL, "/"),
		log:      log,
		now:      time.Now,
	}
}

func hashPassword(plain string) (string, error) {
	hash, err := auth.HashPassword(plain)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	return hash, err
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, &model.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	token, digest, err := auth.NewResetToken()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, u.ID, digest, s.now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	msg, err := mail.PasswordResetMessage(u.Email, u.Username, s.resetURL+"/"+token)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("reset_email_failed", "user_id", u.ID, "error", err.Error())
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	u, err := s.users.FindByResetToken(ctx, auth.HashResetToken(token), s.now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

func (s *authService) UpdateRole(ctx context.Context, userID string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	u, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
