package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// MockNoteService is a testify mock for service.NoteService.
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Create(ctx context.Context, userID, orgID string, in service.NoteInput) (*model.Note, error) {
	args := m.Called(ctx, userID, orgID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) List(ctx context.Context, userID, orgID, search string, limit, offset int) (*model.Page[model.Note], error) {
	args := m.Called(ctx, userID, orgID, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Note]), args.Error(1)
}

func (m *MockNoteService) Get(ctx context.Context, userID, orgID, id string) (*model.Note, error) {
	args := m.Called(ctx, userID, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, userID, orgID, id string, in service.NoteInput) (*model.Note, error) {
	args := m.Called(ctx, userID, orgID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, userID, orgID, id string) error {
	args := m.Called(ctx, userID, orgID, id)
	return args.Error(0)
}
