package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/storage"
)

// DownloadURLExpiry is the lifetime of presigned document URLs.
const DownloadURLExpiry = 15 * time.Minute

// DocumentService defines the use cases for organization documents.
// Every call is made on behalf of userID, who must be a member of orgID.
type DocumentService interface {
	// Upload uploads the content to object storage, saves metadata to DB, and rolls back storage if DB save fails.
	// The stored filename is a UUID plus the extension of the accepted content type.
	Upload(ctx context.Context, userID, orgID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, userID, orgID string, limit, offset int) (*model.Page[model.Document], error)

	Get(ctx context.Context, userID, orgID, id string) (*model.Document, error)

	// Delete removes a document from storage and then from the repository.
	// Only the uploader or an organization owner/admin may delete.
	Delete(ctx context.Context, userID, orgID, id string) error

	// DownloadURL returns a presigned URL that downloads under the original filename.
	DownloadURL(ctx context.Context, userID, orgID, id string) (string, error)

	// Open streams the stored content. The caller closes the reader.
	Open(ctx context.Context, userID, orgID, id string) (*model.Document, io.ReadCloser, error)
}

type documentService struct {
	orgAccess
	store storage.Storage
	repo  repository.DocumentRepository
	now   clock
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, orgs repository.OrganizationRepository) DocumentService {
	return &documentService{orgAccess: orgAccess{orgs: orgs}, store: store, repo: repo, now: utcNow}
}

func (s *documentService) Upload(ctx context.Context, userID, orgID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	ct, ext, err := storage.Documents.Check(originalFilename, contentType, size)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}

	key := storage.Documents.Key(orgID, ext)
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: ct,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		UploadedBy:     userID,
		Filename:       filepath.Base(key),
		OriginalName:   filepath.Base(originalFilename),
		StoragePath:    key,
		Size:           objInfo.Size,
		ContentType:    ct,
		CreatedAt:      s.now(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, userID, orgID string, limit, offset int) (*model.Page[model.Document], error) {
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, orgID, page(limit, offset))
}

func (s *documentService) Get(ctx context.Context, userID, orgID, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, userID, orgID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	m, err := s.member(ctx, orgID, userID)
	if err != nil {
		return err
	}
	doc, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return notFound(err)
	}
	if doc.UploadedBy != userID && !m.Role.CanManage() {
		return ErrForbidden
	}
	// Storage first; a failure keeps the row so the object is not orphaned.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, orgID, id)
}

func (s *documentService) DownloadURL(ctx context.Context, userID, orgID, id string) (string, error) {
	doc, err := s.Get(ctx, userID, orgID, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(storage.WithDownloadName(ctx, doc.OriginalName), doc.StoragePath, DownloadURLExpiry)
}

func (s *documentService) Open(ctx context.Context, userID, orgID, id string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, userID, orgID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", doc.StoragePath, err)
	}
	return doc, rc, nil
}
