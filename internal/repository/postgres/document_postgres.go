package postgres

import (
	"context"
	"database/sql"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, organization_id, uploaded_by, filename, original_name, storage_path, size, content_type, created_at`

func scanDocument(s scanner) (*model.Document, error) {
	var d model.Document
	if err := s.Scan(
		&d.ID,
		&d.OrganizationID,
		&d.UploadedBy,
		&d.Filename,
		&d.OriginalName,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, organization_id, uploaded_by, filename, original_name, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OrganizationID,
		doc.UploadedBy,
		doc.Filename,
		doc.OriginalName,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single document of an organization.
func (r *DocumentPostgres) FindByID(ctx context.Context, orgID, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND organization_id = $2`
	return scanDocument(r.db.QueryRowContext(ctx, q, id, orgID))
}

// List returns the organization's documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, orgID string, pq repository.PageQuery) (*model.Page[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE organization_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, orgID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE organization_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, orgID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.Page[model.Document]{Items: items, Total: total}, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, orgID, id string) error {
	const q = `DELETE FROM documents WHERE id = $1 AND organization_id = $2`
	_, err := r.db.ExecContext(ctx, q, id, orgID)
	return err
}
