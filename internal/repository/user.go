package repository

import (
	"context"

	"storeadmin/internal/model"
)

// UserRepository defines data access for accounts.
type UserRepository interface {
	// Create inserts a user. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, f model.UserFilter) (*model.Page[model.User], error)
	UpdateProfile(ctx context.Context, id, name, imageURL string) (*model.User, error)
	UpdateRole(ctx context.Context, id string, role model.UserRole) error
	Delete(ctx context.Context, id string) error
}
