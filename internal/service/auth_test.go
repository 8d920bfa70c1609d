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

	"storeadmin/internal/auth"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	repoMocks "storeadmin/internal/repository/mocks"
	"storeadmin/internal/validate"
)

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue(u *model.User) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-for-" + u.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func newAuth(users *repoMocks.MockUserRepository, issuer TokenIssuer) *authService {
	svc := NewAuthService(users, issuer).(*authService)
	svc.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	svc.verify = func(plain, phc string) bool { return phc == "hashed:"+plain }
	svc.decoy = func() string { return "hashed:decoy" }
	return svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ana@example.com" && u.Role == model.UserRoleCustomer && u.PasswordHash == "hashed:s3cret-pass"
		})).Return(&model.User{ID: "u-1", Email: "ana@example.com", Role: model.UserRoleCustomer}, nil)

		sess, err := newAuth(users, stubIssuer{}).Register(ctx, RegisterInput{
			Email: "  Ana@Example.com ", Name: "Ana", Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, "token-for-u-1", sess.Token)
		assert.Equal(t, "u-1", sess.User.ID)
		users.AssertExpectations(t)
	})

	t.Run("taken email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)

		_, err := newAuth(users, stubIssuer{}).Register(ctx, RegisterInput{Email: "a@b.co", Name: "A", Password: "long-enough"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		_, err := newAuth(users, stubIssuer{}).Register(ctx, RegisterInput{Email: "a@b.co", Name: "A", Password: "short"})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "password", verr.Fields[0].Field)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	stored := &model.User{ID: "u-1", Email: "ana@example.com", PasswordHash: "hashed:right-password"}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(users *repoMocks.MockUserRepository)
		issuer   TokenIssuer
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "ANA@example.com",
			password: "right-password",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil)
			},
			issuer: stubIssuer{},
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "wrong-password",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil)
			},
			issuer:  stubIssuer{},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email looks the same",
			email:    "who@example.com",
			password: "whatever",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "who@example.com").Return(nil, sql.ErrNoRows)
			},
			issuer:  stubIssuer{},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "issuer failure",
			email:    "ana@example.com",
			password: "right-password",
			setup: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil)
			},
			issuer:  stubIssuer{err: errors.New("sign failed")},
			wantErr: errors.New("sign failed"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			tt.setup(users)

			sess, err := newAuth(users, tt.issuer).Login(ctx, LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.Nil(t, sess)
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "token-for-u-1", sess.Token)
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_UnknownEmailVerifiesDecoy(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.MockUserRepository)
	users.On("FindByEmail", ctx, "who@example.com").Return(nil, sql.ErrNoRows)

	svc := newAuth(users, stubIssuer{})
	var checked []string
	svc.verify = func(plain, phc string) bool {
		checked = append(checked, phc)
		return phc == "hashed:"+plain
	}

	// even the decoy's own password must not open a session
	_, err := svc.Login(ctx, LoginInput{Email: "who@example.com", Password: "decoy"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, []string{"hashed:decoy"}, checked)
}

func TestDecoyHash(t *testing.T) {
	h := decoyHash()
	assert.True(t, strings.HasPrefix(h, "$argon2id$"))
	assert.Equal(t, h, decoyHash())
	assert.False(t, auth.VerifyPassword("anything", h))
}
