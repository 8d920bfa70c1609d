package service

import (
	"context"
	"errors"
	"strings"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

type ProfileInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=2048"`
}

// UserService manages accounts. Admin-only operations receive the acting user's ID.
type UserService interface {
	List(ctx context.Context, f model.UserFilter) (*model.Page[model.User], error)
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, in ProfileInput) (*model.User, error)
	UpdateRole(ctx context.Context, actorID, id string, role model.UserRole) (*model.User, error)
	Delete(ctx context.Context, actorID, id string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, f model.UserFilter) (*model.Page[model.User], error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, validate.Field("role", "must be one of: admin, customer")
	}
	pq := page(f.Limit, f.Offset)
	f.Limit, f.Offset = pq.Limit, pq.Offset
	f.Search = strings.TrimSpace(f.Search)
	return s.users.List(ctx, f)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.users.UpdateProfile(ctx, id, in.Name, in.ImageURL)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// UpdateRole changes another user's role. Admins cannot demote themselves.
func (s *userService) UpdateRole(ctx context.Context, actorID, id string, role model.UserRole) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if !role.Valid() {
		return nil, validate.Field("role", "must be one of: admin, customer")
	}
	if actorID == id {
		return nil, ErrForbidden
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

// Delete removes another user's account. Admins cannot delete themselves.
func (s *userService) Delete(ctx context.Context, actorID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if actorID == id {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrInUse
		}
		return notFound(err)
	}
	return nil
}
