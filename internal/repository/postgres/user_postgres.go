package postgres

import (
	"context"
	"database/sql"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, name, password_hash, role, image_url, created_at, updated_at`

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user row.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, name, password_hash, role, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q, u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.ImageURL, u.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a user by normalized email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// List returns users matching the filter, newest first.
func (r *UserPostgres) List(ctx context.Context, f model.UserFilter) (*model.Page[model.User], error) {
	var w where
	if f.Search != "" {
		w.add("(name ILIKE ? OR email ILIKE ?)", likePattern(f.Search))
	}
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(repository.PageQuery{Limit: f.Limit, Offset: f.Offset})
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY created_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.User]{Items: items, Total: total}, nil
}

// UpdateProfile sets the display fields of a user.
func (r *UserPostgres) UpdateProfile(ctx context.Context, id, name, imageURL string) (*model.User, error) {
	const q = `
		UPDATE users SET name = $2, image_url = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, id, name, imageURL))
}

// UpdateRole changes a user's global role.
func (r *UserPostgres) UpdateRole(ctx context.Context, id string, role model.UserRole) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a user with their reviews, notifications and memberships. Users with
// orders, owned organizations or authored content are kept and yield ErrReferenced.
func (r *UserPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}
