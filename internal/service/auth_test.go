package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restoapi/internal/auth"
	"restoapi/internal/logger"
	"restoapi/internal/mail"
	mailMocks "restoapi/internal/mail/mocks"
	"restoapi/internal/model"
	"restoapi/internal/repository"
	repoMocks "restoapi/internal/repository/mocks"
)

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) Issue(*model.User) (string, error) { return s.token, s.err }

func newAuthService(users *repoMocks.MockUserRepository, mailer *mailMocks.MockMailer) *authService {
	return NewAuthService(users, stubIssuer{token: "jwt"}, mailer, "http://app.local/reset/", logger.Discard()).(*authService)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("customer role and normalised email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleCustomer &&
				u.Email == "an@example.com" &&
				u.Username == "an" &&
				auth.CheckPassword(u.PasswordHash, "secret1")
		})).Return(&model.User{ID: "u-1", Email: "an@example.com", Role: model.RoleCustomer}, nil)

		u, err := newAuthService(users, nil).Register(ctx, RegisterInput{Username: " an ", Email: " AN@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)

		_, err := newAuthService(users, nil).Register(ctx, RegisterInput{Email: "an@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("password over 72 bytes", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)

		_, err := newAuthService(users, nil).Register(ctx, RegisterInput{Email: "an@example.com", Password: strings.Repeat("é", 40)})
		assert.ErrorIs(t, err, ErrPasswordTooLong)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := &model.User{ID: "u-1", Email: "an@example.com", PasswordHash: hash}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(users *repoMocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:     "happy path",
			email:    "AN@example.com ",
			password: "secret1",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "an@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "an@example.com",
			password: "nope",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "an@example.com").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "who@example.com",
			password: "secret1",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "who@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			tt.setup(users)

			res, err := newAuthService(users, nil).Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jwt", res.Token)
				assert.Equal(t, "u-1", res.User.ID)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	t.Run("unknown email is silent", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		mailer := new(mailMocks.MockMailer)
		users.On("FindByEmail", ctx, "who@example.com").Return(nil, sql.ErrNoRows)

		assert.NoError(t, newAuthService(users, mailer).ForgotPassword(ctx, "who@example.com"))
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("stores digest and mails raw token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		mailer := new(mailMocks.MockMailer)
		users.On("FindByEmail", ctx, "an@example.com").Return(&model.User{ID: "u-1", Email: "an@example.com", Username: "An"}, nil)

		var digest string
		users.On("SetResetToken", ctx, "u-1", mock.Anything, now.Add(time.Hour)).
			Run(func(args mock.Arguments) { digest = args.String(2) }).
			Return(nil)

		var sent mail.Message
		mailer.On("Send", ctx, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(mail.Message) }).
			Return(errors.New("smtp down"))

		svc := newAuthService(users, mailer)
		svc.now = func() time.Time { return now }

		// mail failures are only logged
		require.NoError(t, svc.ForgotPassword(ctx, "an@example.com"))

		assert.Equal(t, "an@example.com", sent.To)
		idx := strings.Index(sent.Text, "http://app.local/reset/")
		require.GreaterOrEqual(t, idx, 0)
		token := strings.Fields(sent.Text[idx+len("http://app.local/reset/"):])[0]
		assert.Equal(t, auth.HashResetToken(token), digest)
		users.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByResetToken", ctx, auth.HashResetToken("tok"), mock.Anything).Return(&model.User{ID: "u-1"}, nil)
		users.On("UpdatePassword", ctx, "u-1", mock.MatchedBy(func(h string) bool {
			return auth.CheckPassword(h, "newpass")
		})).Return(nil)

		assert.NoError(t, newAuthService(users, nil).ResetPassword(ctx, "tok", "newpass"))
		users.AssertExpectations(t)
	})

	t.Run("expired or unknown token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByResetToken", ctx, mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, newAuthService(users, nil).ResetPassword(ctx, "tok", "newpass"), ErrInvalidResetToken)
	})
}

func TestAuthService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.MockUserRepository)
	users.On("UpdateRole", ctx, "u-1", model.RoleStaff).Return(&model.User{ID: "u-1", Role: model.RoleStaff}, nil)
	users.On("UpdateRole", ctx, "missing", model.RoleAdmin).Return(nil, sql.ErrNoRows)
	svc := newAuthService(users, nil)

	u, err := svc.UpdateRole(ctx, "u-1", model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, u.Role)

	_, err = svc.UpdateRole(ctx, "u-1", "owner")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateRole(ctx, "missing", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
