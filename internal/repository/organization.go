package repository

import (
	"context"
	"time"

	"storeadmin/internal/model"
)

// OrganizationRepository defines data access for organizations and their members.
type OrganizationRepository interface {
	// Create stores the organization and its owner membership in one transaction.
	// A taken slug yields ErrDuplicate.
	Create(ctx context.Context, org *model.Organization) (*model.Organization, error)
	FindByID(ctx context.Context, id string) (*model.Organization, error)
	// ListForUser returns the organizations userID belongs to, with Role set.
	ListForUser(ctx context.Context, userID string) ([]model.Organization, error)
	Update(ctx context.Context, id, name, imageURL string) (*model.Organization, error)
	Delete(ctx context.Context, id string) error

	// FindMember returns the membership of userID in orgID.
	FindMember(ctx context.Context, orgID, userID string) (*model.Member, error)
	// IsMemberEmail reports whether a user with email already belongs to orgID.
	IsMemberEmail(ctx context.Context, orgID, email string) (bool, error)
	ListMembers(ctx context.Context, orgID string) ([]model.Member, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role model.MemberRole) error
	DeleteMember(ctx context.Context, orgID, userID string) error
}

// InvitationRepository defines data access for organization invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *model.Invitation) (*model.Invitation, error)
	FindByID(ctx context.Context, orgID, id string) (*model.Invitation, error)
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	// FindPending returns the pending, unexpired invitation for email in orgID.
	FindPending(ctx context.Context, orgID, email string, now time.Time) (*model.Invitation, error)
	List(ctx context.Context, orgID string) ([]model.Invitation, error)
	// UpdateStatus changes a pending invitation's status. A non-pending invitation yields ErrConflict.
	UpdateStatus(ctx context.Context, id string, status model.InvitationStatus) error
	// Accept inserts the member and marks the invitation accepted in one transaction.
	Accept(ctx context.Context, inv *model.Invitation, userID string) (*model.Member, error)
	// ExpireDue marks pending invitations past their expiry as expired.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// NoteRepository defines data access for organization notes.
type NoteRepository interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	FindByID(ctx context.Context, orgID, id string) (*model.Note, error)
	List(ctx context.Context, orgID, search string, pq PageQuery) (*model.Page[model.Note], error)
	Update(ctx context.Context, orgID, id, title, content string) (*model.Note, error)
	Delete(ctx context.Context, orgID, id string) error
}
