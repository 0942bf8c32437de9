package repository

import (
	"context"
	"time"

	"restoapi/internal/model"
)

type UserRepository interface {
	// Create inserts a user; ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByResetToken returns the user holding an unexpired reset token hash.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	SetResetToken(ctx context.Context, id, tokenHash string, expireAt time.Time) error
	// UpdatePassword stores a new hash and clears any reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error)
}
