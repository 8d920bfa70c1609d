package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
)

// MockDocumentService is a testify mock for service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, userID, orgID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, userID, orgID, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, userID, orgID string, limit, offset int) (*model.Page[model.Document], error) {
	args := m.Called(ctx, userID, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Document]), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, userID, orgID, id string) (*model.Document, error) {
	args := m.Called(ctx, userID, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, userID, orgID, id string) error {
	args := m.Called(ctx, userID, orgID, id)
	return args.Error(0)
}

func (m *MockDocumentService) Open(ctx context.Context, userID, orgID, id string) (*model.Document, io.ReadCloser, error) {
	args := m.Called(ctx, userID, orgID, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Document), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, userID, orgID, id string) (string, error) {
	args := m.Called(ctx, userID, orgID, id)
	return args.String(0), args.Error(1)
}
