package model

import "time"

// MemberRole is a user's role inside an organization.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// CanManage reports whether the role may administer members and invitations.
func (r MemberRole) CanManage() bool {
	return r == MemberRoleOwner || r == MemberRoleAdmin
}

// Assignable reports whether the role may be granted through an invitation or role update.
func (r MemberRole) Assignable() bool {
	return r == MemberRoleAdmin || r == MemberRoleMember
}

// Organization is a tenant grouping users, documents and notes.
type Organization struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	OwnerID   string     `json:"owner_id"`
	ImageURL  string     `json:"image_url,omitempty"`
	Role      MemberRole `json:"role,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Member links a user to an organization.
type Member struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	UserID         string     `json:"user_id"`
	Role           MemberRole `json:"role"`
	UserName       string     `json:"user_name,omitempty"`
	UserEmail      string     `json:"user_email,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation offers an email address membership in an organization.
type Invitation struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	Email          string           `json:"email"`
	Role           MemberRole       `json:"role"`
	Token          string           `json:"-"`
	Status         InvitationStatus `json:"status"`
	InvitedBy      string           `json:"invited_by"`
	ExpiresAt      time.Time        `json:"expires_at"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Note is a text note kept inside an organization.
type Note struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	AuthorID       string    `json:"author_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
