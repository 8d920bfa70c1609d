package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

type NoteInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"max=20000"`
}

// NoteService manages organization notes. Members may read and create; the author
// or an owner/admin may edit and delete.
type NoteService interface {
	Create(ctx context.Context, userID, orgID string, in NoteInput) (*model.Note, error)
	List(ctx context.Context, userID, orgID, search string, limit, offset int) (*model.Page[model.Note], error)
	Get(ctx context.Context, userID, orgID, id string) (*model.Note, error)
	Update(ctx context.Context, userID, orgID, id string, in NoteInput) (*model.Note, error)
	Delete(ctx context.Context, userID, orgID, id string) error
}

type noteService struct {
	orgAccess
	notes repository.NoteRepository
	now   clock
}

func NewNoteService(notes repository.NoteRepository, orgs repository.OrganizationRepository) NoteService {
	return &noteService{orgAccess: orgAccess{orgs: orgs}, notes: notes, now: utcNow}
}

func (s *noteService) Create(ctx context.Context, userID, orgID string, in NoteInput) (*model.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}
	now := s.now()
	return s.notes.Create(ctx, &model.Note{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		AuthorID:       userID,
		Title:          in.Title,
		Content:        in.Content,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *noteService) List(ctx context.Context, userID, orgID, search string, limit, offset int) (*model.Page[model.Note], error) {
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}
	return s.notes.List(ctx, orgID, strings.TrimSpace(search), page(limit, offset))
}

func (s *noteService) Get(ctx context.Context, userID, orgID, id string) (*model.Note, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}
	n, err := s.notes.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// editable loads a note the caller may modify.
func (s *noteService) editable(ctx context.Context, userID, orgID, id string) (*model.Note, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	m, err := s.member(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	n, err := s.notes.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err)
	}
	if n.AuthorID != userID && !m.Role.CanManage() {
		return nil, ErrForbidden
	}
	return n, nil
}

func (s *noteService) Update(ctx context.Context, userID, orgID, id string, in NoteInput) (*model.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.editable(ctx, userID, orgID, id); err != nil {
		return nil, err
	}
	n, err := s.notes.Update(ctx, orgID, id, in.Title, in.Content)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

func (s *noteService) Delete(ctx context.Context, userID, orgID, id string) error {
	if _, err := s.editable(ctx, userID, orgID, id); err != nil {
		return err
	}
	return notFound(s.notes.Delete(ctx, orgID, id))
}
