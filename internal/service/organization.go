package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/logger"
	"storeadmin/internal/mail"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

// InvitationTTL is how long an invitation stays acceptable.
const InvitationTTL = 7 * 24 * time.Hour

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type OrganizationInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=60"`
}

type OrganizationUpdateInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=2048"`
}

type InviteInput struct {
	Email string           `json:"email" validate:"required,email,max=254"`
	Role  model.MemberRole `json:"role" validate:"required,oneof=admin member"`
}

// OrganizationService manages organizations, their members and invitations.
// actorID/userID is always the authenticated caller.
type OrganizationService interface {
	Create(ctx context.Context, userID string, in OrganizationInput) (*model.Organization, error)
	Get(ctx context.Context, userID, orgID string) (*model.Organization, error)
	ListForUser(ctx context.Context, userID string) ([]model.Organization, error)
	Update(ctx context.Context, userID, orgID string, in OrganizationUpdateInput) (*model.Organization, error)
	Delete(ctx context.Context, userID, orgID string) error

	ListMembers(ctx context.Context, userID, orgID string) ([]model.Member, error)
	UpdateMemberRole(ctx context.Context, actorID, orgID, targetID string, role model.MemberRole) (*model.Member, error)
	RemoveMember(ctx context.Context, actorID, orgID, targetID string) error
	Leave(ctx context.Context, userID, orgID string) error

	Invite(ctx context.Context, actorID, orgID string, in InviteInput) (*model.Invitation, error)
	ListInvitations(ctx context.Context, actorID, orgID string) ([]model.Invitation, error)
	Revoke(ctx context.Context, actorID, orgID, invitationID string) error
	Accept(ctx context.Context, userID, token string) (*model.Member, error)
	// ExpireInvitations marks pending invitations past their expiry as expired.
	ExpireInvitations(ctx context.Context, now time.Time) (int64, error)
}

type organizationService struct {
	orgAccess
	invitations   repository.InvitationRepository
	users         repository.UserRepository
	mailer        mail.Sender
	notifications NotificationService
	publicURL     string
	now           clock
}

func NewOrganizationService(
	orgs repository.OrganizationRepository,
	invitations repository.InvitationRepository,
	users repository.UserRepository,
	mailer mail.Sender,
	notifications NotificationService,
	publicURL string,
) OrganizationService {
	return &organizationService{
		orgAccess:     orgAccess{orgs: orgs},
		invitations:   invitations,
		users:         users,
		mailer:        mailer,
		notifications: notifications,
		publicURL:     publicURL,
		now:           utcNow,
	}
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *organizationService) Create(ctx context.Context, userID string, in OrganizationInput) (*model.Organization, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, validate.Field("slug", "must contain lowercase letters, digits and single dashes")
	}

	now := s.now()
	org, err := s.orgs.Create(ctx, &model.Organization{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Slug:      in.Slug,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	org.Role = model.MemberRoleOwner
	return org, nil
}

func (s *organizationService) Get(ctx context.Context, userID, orgID string) (*model.Organization, error) {
	m, err := s.member(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, notFound(err)
	}
	org.Role = m.Role
	return org, nil
}

func (s *organizationService) ListForUser(ctx context.Context, userID string) ([]model.Organization, error) {
	return s.orgs.ListForUser(ctx, userID)
}

func (s *organizationService) Update(ctx context.Context, userID, orgID string, in OrganizationUpdateInput) (*model.Organization, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	m, err := s.manager(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.Update(ctx, orgID, in.Name, in.ImageURL)
	if err != nil {
		return nil, notFound(err)
	}
	org.Role = m.Role
	return org, nil
}

// Delete removes the organization. Only the owner may do this.
func (s *organizationService) Delete(ctx context.Context, userID, orgID string) error {
	m, err := s.member(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if m.Role != model.MemberRoleOwner {
		return ErrForbidden
	}
	return notFound(s.orgs.Delete(ctx, orgID))
}

func (s *organizationService) ListMembers(ctx context.Context, userID, orgID string) ([]model.Member, error) {
	if _, err := s.member(ctx, orgID, userID); err != nil {
		return nil, err
	}
	return s.orgs.ListMembers(ctx, orgID)
}

// UpdateMemberRole is restricted to the owner and can never grant or revoke ownership.
func (s *organizationService) UpdateMemberRole(ctx context.Context, actorID, orgID, targetID string, role model.MemberRole) (*model.Member, error) {
	if !role.Assignable() {
		return nil, validate.Field("role", "must be one of: admin, member")
	}
	actor, err := s.member(ctx, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.MemberRoleOwner {
		return nil, ErrForbidden
	}
	target, err := s.orgs.FindMember(ctx, orgID, targetID)
	if err != nil {
		return nil, notFound(err)
	}
	if target.Role == model.MemberRoleOwner {
		return nil, ErrForbidden
	}
	if err := s.orgs.UpdateMemberRole(ctx, orgID, targetID, role); err != nil {
		return nil, notFound(err)
	}
	target.Role = role
	return target, nil
}

// RemoveMember lets owners remove anyone but themselves and admins remove plain members.
func (s *organizationService) RemoveMember(ctx context.Context, actorID, orgID, targetID string) error {
	actor, err := s.manager(ctx, orgID, actorID)
	if err != nil {
		return err
	}
	target, err := s.orgs.FindMember(ctx, orgID, targetID)
	if err != nil {
		return notFound(err)
	}
	if target.Role == model.MemberRoleOwner {
		return ErrForbidden
	}
	if actor.Role == model.MemberRoleAdmin && target.Role == model.MemberRoleAdmin && actorID != targetID {
		return ErrForbidden
	}
	return notFound(s.orgs.DeleteMember(ctx, orgID, targetID))
}

func (s *organizationService) Leave(ctx context.Context, userID, orgID string) error {
	m, err := s.member(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if m.Role == model.MemberRoleOwner {
		return ErrForbidden
	}
	return notFound(s.orgs.DeleteMember(ctx, orgID, userID))
}

func (s *organizationService) Invite(ctx context.Context, actorID, orgID string, in InviteInput) (*model.Invitation, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.manager(ctx, orgID, actorID); err != nil {
		return nil, err
	}

	isMember, err := s.orgs.IsMemberEmail(ctx, orgID, in.Email)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}
	now := s.now()
	if _, err := s.invitations.FindPending(ctx, orgID, in.Email, now); err == nil {
		return nil, ErrInvitationPending
	} else if !errors.Is(notFound(err), ErrNotFound) {
		return nil, err
	}

	token, err := randomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate invitation token: %w", err)
	}
	inv, err := s.invitations.Create(ctx, &model.Invitation{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Email:          in.Email,
		Role:           in.Role,
		Token:          token,
		Status:         model.InvitationPending,
		InvitedBy:      actorID,
		ExpiresAt:      now.Add(InvitationTTL),
		CreatedAt:      now,
	})
	if err != nil {
		return nil, err
	}
	inv.Token = token

	s.deliverInvitation(ctx, inv)
	return inv, nil
}

// deliverInvitation emails the invitee and notifies them in-app when they already have an account.
// Failures are logged; the invitation stays valid and can be revoked and re-sent.
func (s *organizationService) deliverInvitation(ctx context.Context, inv *model.Invitation) {
	log := logger.From(ctx).With(zap.String("invitation_id", inv.ID), zap.String("organization_id", inv.OrganizationID))

	orgName, inviterName := "", ""
	if org, err := s.orgs.FindByID(ctx, inv.OrganizationID); err == nil {
		orgName = org.Name
	}
	if u, err := s.users.FindByID(ctx, inv.InvitedBy); err == nil {
		inviterName = u.Name
	}

	if s.mailer != nil {
		msg, err := mail.InvitationMessage(s.publicURL, mail.Invitation{
			To:               inv.Email,
			OrganizationName: orgName,
			InviterName:      inviterName,
			Role:             string(inv.Role),
			Token:            inv.Token,
			ExpiresAt:        inv.ExpiresAt,
		})
		if err == nil {
			err = s.mailer.Send(ctx, msg)
		}
		if err != nil {
			log.Error("invitation email failed", zap.Error(err))
		}
	}

	if s.notifications == nil {
		return
	}
	invitee, err := s.users.FindByEmail(ctx, inv.Email)
	if err != nil {
		return
	}
	if _, err := s.notifications.Notify(ctx, invitee.ID, model.NotificationInvitation,
		"Invitation to "+orgName,
		fmt.Sprintf("%s invited you to join %s as %s.", inviterName, orgName, inv.Role),
		"/invitations/accept?token="+inv.Token,
	); err != nil {
		log.Warn("invitation notification failed", zap.Error(err))
	}
}

func (s *organizationService) ListInvitations(ctx context.Context, actorID, orgID string) ([]model.Invitation, error) {
	if _, err := s.manager(ctx, orgID, actorID); err != nil {
		return nil, err
	}
	return s.invitations.List(ctx, orgID)
}

func (s *organizationService) Revoke(ctx context.Context, actorID, orgID, invitationID string) error {
	if _, err := s.manager(ctx, orgID, actorID); err != nil {
		return err
	}
	inv, err := s.invitations.FindByID(ctx, orgID, invitationID)
	if err != nil {
		return notFound(err)
	}
	if err := s.invitations.UpdateStatus(ctx, inv.ID, model.InvitationRevoked); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrInvitationInvalid
		}
		return err
	}
	return nil
}

// Accept joins the caller to the inviting organization. The invitation must be
// pending, unexpired and addressed to the caller's email.
func (s *organizationService) Accept(ctx context.Context, userID, token string) (*model.Member, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, validate.Field("token", "is required")
	}
	inv, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, notFound(err)
	}
	if inv.Status != model.InvitationPending {
		return nil, ErrInvitationInvalid
	}
	if !s.now().Before(inv.ExpiresAt) {
		if err := s.invitations.UpdateStatus(ctx, inv.ID, model.InvitationExpired); err != nil && !errors.Is(err, repository.ErrConflict) {
			logger.From(ctx).Warn("marking invitation expired failed", zap.String("invitation_id", inv.ID), zap.Error(err))
		}
		return nil, ErrInvitationExpired
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	if normalizeEmail(u.Email) != inv.Email {
		return nil, ErrForbidden
	}

	m, err := s.invitations.Accept(ctx, inv, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrInvitationInvalid
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return m, nil
}

func (s *organizationService) ExpireInvitations(ctx context.Context, now time.Time) (int64, error) {
	return s.invitations.ExpireDue(ctx, now)
}
