package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/auth"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *model.User) (string, time.Time, error)
}

// Session is returned after a successful register or login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService registers customers and opens sessions.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	hash   func(string) (string, error)
	verify func(plain, phc string) bool
	// decoy is verified against when the email is unknown so both branches cost one argon2 run.
	decoy func() string
	now   clock
}

var (
	decoyOnce sync.Once
	decoyPHC  string
)

func decoyHash() string {
	decoyOnce.Do(func() {
		decoyPHC, _ = auth.HashPassword(uuid.NewString())
	})
	return decoyPHC
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		hash:   auth.HashPassword,
		verify: auth.VerifyPassword,
		decoy:  decoyHash,
		now:    utcNow,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	u, err := s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         model.UserRoleCustomer,
		CreatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.session(u)
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			s.verify(in.Password, s.decoy())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.verify(in.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *authService) session(u *model.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}
