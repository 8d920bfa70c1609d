package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var documentRowColumns = []string{"id", "organization_id", "uploaded_by", "filename", "original_name", "storage_path", "size", "content_type", "created_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:             "doc-1",
		OrganizationID: "org-1",
		UploadedBy:     "user-1",
		Filename:       "uuid.pdf",
		OriginalName:   "invoice.pdf",
		StoragePath:    "documents/org-1/uuid.pdf",
		Size:           123,
		ContentType:    "application/pdf",
		CreatedAt:      now,
	}

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow(doc.ID, doc.OrganizationID, doc.UploadedBy, doc.Filename, doc.OriginalName, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.OrganizationID, doc.UploadedBy, doc.Filename, doc.OriginalName, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, "invoice.pdf", result.OriginalName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentRowColumns).
			AddRow("doc-1", "org-1", "user-1", "a.pdf", "a.pdf", "documents/org-1/a.pdf", 100, "application/pdf", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND organization_id = (.+)").
			WithArgs("doc-1", "org-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "org-1", "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+)").
			WithArgs("missing", "org-1").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "org-1", "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE organization_id").
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow("doc-1", "org-1", "user-1", "a.pdf", "a.pdf", "documents/org-1/a.pdf", 100, "application/pdf", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE organization_id = (.+) ORDER BY").
		WithArgs("org-1", 10, 0).
		WillReturnRows(rows)

	res, err := repo.List(context.Background(), "org-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectExec("DELETE FROM documents WHERE id = (.+) AND organization_id = (.+)").
		WithArgs("doc-1", "org-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "org-1", "doc-1")

	assert.NoError(t, err, "deleting a missing row is not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}
