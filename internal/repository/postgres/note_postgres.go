package postgres

import (
	"context"
	"database/sql"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

const noteColumns = `id, organization_id, author_id, title, content, created_at, updated_at`

func scanNote(s scanner) (*model.Note, error) {
	var n model.Note
	if err := s.Scan(&n.ID, &n.OrganizationID, &n.AuthorID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a note.
func (r *NotePostgres) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, organization_id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRowContext(ctx, q, n.ID, n.OrganizationID, n.AuthorID, n.Title, n.Content, n.CreatedAt))
}

// FindByID fetches a note of an organization.
func (r *NotePostgres) FindByID(ctx context.Context, orgID, id string) (*model.Note, error) {
	return scanNote(r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1 AND organization_id = $2`, id, orgID))
}

// List returns an organization's notes, most recently edited first.
func (r *NotePostgres) List(ctx context.Context, orgID, search string, pq repository.PageQuery) (*model.Page[model.Note], error) {
	var w where
	w.add("organization_id = ?", orgID)
	if search != "" {
		w.add("(title ILIKE ? OR content ILIKE ?)", likePattern(search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(pq)
	rows, err := r.db.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes`+w.String()+` ORDER BY updated_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Note]{Items: items, Total: total}, nil
}

// Update overwrites a note's title and content.
func (r *NotePostgres) Update(ctx context.Context, orgID, id, title, content string) (*model.Note, error) {
	const q = `
		UPDATE notes SET title = $3, content = $4, updated_at = now()
		WHERE id = $1 AND organization_id = $2
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRowContext(ctx, q, id, orgID, title, content))
}

// Delete removes a note.
func (r *NotePostgres) Delete(ctx context.Context, orgID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
