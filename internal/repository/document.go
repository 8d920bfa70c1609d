package repository

import (
	"context"

	"storeadmin/internal/model"
)

// DocumentRepository defines data access for organization documents.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document of the organization by its ID.
	FindByID(ctx context.Context, orgID, id string) (*model.Document, error)

	// List returns a page of the organization's documents, newest first.
	List(ctx context.Context, orgID string, pq PageQuery) (*model.Page[model.Document], error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, orgID, id string) error
}
