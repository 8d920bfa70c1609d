package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/database"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// InvitationPostgres is a PostgreSQL implementation of repository.InvitationRepository.
type InvitationPostgres struct {
	db *sql.DB
}

// NewInvitationPostgres creates a new InvitationPostgres repository.
func NewInvitationPostgres(db *sql.DB) *InvitationPostgres {
	return &InvitationPostgres{db: db}
}

var _ repository.InvitationRepository = (*InvitationPostgres)(nil)

const invitationColumns = `id, organization_id, email, role, token, status, invited_by, expires_at, created_at`

func scanInvitation(s scanner) (*model.Invitation, error) {
	var inv model.Invitation
	if err := s.Scan(&inv.ID, &inv.OrganizationID, &inv.Email, &inv.Role, &inv.Token, &inv.Status, &inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserts an invitation.
func (r *InvitationPostgres) Create(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	const q = `
		INSERT INTO invitations (id, organization_id, email, role, token, status, invited_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + invitationColumns
	out, err := scanInvitation(r.db.QueryRowContext(ctx, q,
		inv.ID, inv.OrganizationID, inv.Email, inv.Role, inv.Token, inv.Status, inv.InvitedBy, inv.ExpiresAt, inv.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches an invitation of an organization.
func (r *InvitationPostgres) FindByID(ctx context.Context, orgID, id string) (*model.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = $1 AND organization_id = $2`, id, orgID))
}

// FindByToken fetches an invitation by its secret token.
func (r *InvitationPostgres) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token))
}

// FindPending fetches the live invitation for an email.
func (r *InvitationPostgres) FindPending(ctx context.Context, orgID, email string, now time.Time) (*model.Invitation, error) {
	const q = `
		SELECT ` + invitationColumns + ` FROM invitations
		WHERE organization_id = $1 AND email = $2 AND status = 'pending' AND expires_at > $3
		ORDER BY created_at DESC LIMIT 1`
	return scanInvitation(r.db.QueryRowContext(ctx, q, orgID, email, now))
}

// List returns all invitations of an organization, newest first.
func (r *InvitationPostgres) List(ctx context.Context, orgID string) ([]model.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE organization_id = $1 ORDER BY created_at DESC, id DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a pending invitation.
func (r *InvitationPostgres) UpdateStatus(ctx context.Context, id string, status model.InvitationStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE invitations SET status = $2 WHERE id = $1 AND status = 'pending'`, id, status)
	if err != nil {
		return err
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// Accept adds the member and closes the invitation.
func (r *InvitationPostgres) Accept(ctx context.Context, inv *model.Invitation, userID string) (*model.Member, error) {
	memberID := uuid.NewString()
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE invitations SET status = 'accepted' WHERE id = $1 AND status = 'pending'`, inv.ID)
		if err != nil {
			return err
		}
		if err := expectAffected(res); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrConflict
			}
			return err
		}
		const qMember = `
			INSERT INTO members (id, organization_id, user_id, role, created_at)
			VALUES ($1, $2, $3, $4, now())`
		_, err = tx.ExecContext(ctx, qMember, memberID, inv.OrganizationID, userID, inv.Role)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return scanMember(r.db.QueryRowContext(ctx, memberSelect+` WHERE m.id = $1`, memberID))
}

// ExpireDue closes pending invitations whose expiry has passed.
func (r *InvitationPostgres) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE invitations SET status = 'expired' WHERE status = 'pending' AND expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
