package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"storeadmin/internal/database"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// OrganizationPostgres is a PostgreSQL implementation of repository.OrganizationRepository.
type OrganizationPostgres struct {
	db *sql.DB
}

// NewOrganizationPostgres creates a new OrganizationPostgres repository.
func NewOrganizationPostgres(db *sql.DB) *OrganizationPostgres {
	return &OrganizationPostgres{db: db}
}

var _ repository.OrganizationRepository = (*OrganizationPostgres)(nil)

const orgColumns = `o.id, o.name, o.slug, o.owner_id, o.image_url, o.created_at, o.updated_at`

func scanOrganization(s scanner, extra ...any) (*model.Organization, error) {
	var o model.Organization
	dest := append([]any{&o.ID, &o.Name, &o.Slug, &o.OwnerID, &o.ImageURL, &o.CreatedAt, &o.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the organization and the owner's member row.
func (r *OrganizationPostgres) Create(ctx context.Context, org *model.Organization) (*model.Organization, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		const qOrg = `
			INSERT INTO organizations (id, name, slug, owner_id, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)`
		if _, err := tx.ExecContext(ctx, qOrg, org.ID, org.Name, org.Slug, org.OwnerID, org.ImageURL, org.CreatedAt); err != nil {
			return mapError(err)
		}
		const qMember = `
			INSERT INTO members (id, organization_id, user_id, role, created_at)
			VALUES ($1, $2, $3, $4, $5)`
		_, err := tx.ExecContext(ctx, qMember, uuid.NewString(), org.ID, org.OwnerID, model.MemberRoleOwner, org.CreatedAt)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, org.ID)
}

// FindByID fetches an organization.
func (r *OrganizationPostgres) FindByID(ctx context.Context, id string) (*model.Organization, error) {
	return scanOrganization(r.db.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM organizations o WHERE o.id = $1`, id))
}

// ListForUser returns the user's organizations with the user's role in each.
func (r *OrganizationPostgres) ListForUser(ctx context.Context, userID string) ([]model.Organization, error) {
	const q = `
		SELECT ` + orgColumns + `, m.role
		FROM organizations o
		JOIN members m ON m.organization_id = o.id
		WHERE m.user_id = $1
		ORDER BY o.name ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Organization, 0)
	for rows.Next() {
		var role model.MemberRole
		o, err := scanOrganization(rows, &role)
		if err != nil {
			return nil, err
		}
		o.Role = role
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Update sets the display fields of an organization.
func (r *OrganizationPostgres) Update(ctx context.Context, id, name, imageURL string) (*model.Organization, error) {
	const q = `
		UPDATE organizations o SET name = $2, image_url = $3, updated_at = now()
		WHERE o.id = $1
		RETURNING ` + orgColumns
	return scanOrganization(r.db.QueryRowContext(ctx, q, id, name, imageURL))
}

// Delete removes an organization with its members, invitations, documents and notes.
func (r *OrganizationPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

const memberSelect = `
	SELECT m.id, m.organization_id, m.user_id, m.role, u.name, u.email, m.created_at
	FROM members m
	JOIN users u ON u.id = m.user_id`

func scanMember(s scanner) (*model.Member, error) {
	var m model.Member
	if err := s.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.UserName, &m.UserEmail, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMember fetches the membership of a user in an organization.
func (r *OrganizationPostgres) FindMember(ctx context.Context, orgID, userID string) (*model.Member, error) {
	return scanMember(r.db.QueryRowContext(ctx, memberSelect+` WHERE m.organization_id = $1 AND m.user_id = $2`, orgID, userID))
}

// IsMemberEmail reports whether the account with email is already a member.
func (r *OrganizationPostgres) IsMemberEmail(ctx context.Context, orgID, email string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM members m JOIN users u ON u.id = m.user_id
			WHERE m.organization_id = $1 AND u.email = $2
		)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, orgID, email).Scan(&exists)
	return exists, err
}

// ListMembers returns an organization's members, owner first.
func (r *OrganizationPostgres) ListMembers(ctx context.Context, orgID string) ([]model.Member, error) {
	const order = ` ORDER BY CASE m.role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 ELSE 2 END, u.name ASC`
	rows, err := r.db.QueryContext(ctx, memberSelect+` WHERE m.organization_id = $1`+order, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// UpdateMemberRole changes a member's role.
func (r *OrganizationPostgres) UpdateMemberRole(ctx context.Context, orgID, userID string, role model.MemberRole) error {
	res, err := r.db.ExecContext(ctx, `UPDATE members SET role = $3 WHERE organization_id = $1 AND user_id = $2`, orgID, userID, role)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// DeleteMember removes a user from an organization.
func (r *OrganizationPostgres) DeleteMember(ctx context.Context, orgID, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
