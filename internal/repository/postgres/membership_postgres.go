package postgres

import (
	"context"
	"database/sql"
	"time"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// MembershipPostgres is a PostgreSQL implementation of repository.MembershipRepository.
type MembershipPostgres struct {
	db *sql.DB
}

// NewMembershipPostgres creates a new MembershipPostgres repository.
func NewMembershipPostgres(db *sql.DB) *MembershipPostgres {
	return &MembershipPostgres{db: db}
}

var _ repository.MembershipRepository = (*MembershipPostgres)(nil)

const membershipColumns = `id, user_id, plan, status, started_at, expires_at`

func scanMembership(s scanner) (*model.Membership, error) {
	var m model.Membership
	if err := s.Scan(&m.ID, &m.UserID, &m.Plan, &m.Status, &m.StartedAt, &m.ExpiresAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByUser fetches a user's membership.
func (r *MembershipPostgres) FindByUser(ctx context.Context, userID string) (*model.Membership, error) {
	return scanMembership(r.db.QueryRowContext(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE user_id = $1`, userID))
}

// Upsert inserts the membership or replaces the user's existing one, keeping its ID.
func (r *MembershipPostgres) Upsert(ctx context.Context, m *model.Membership) (*model.Membership, error) {
	const q = `
		INSERT INTO memberships (id, user_id, plan, status, started_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET plan = EXCLUDED.plan, status = EXCLUDED.status, started_at = EXCLUDED.started_at, expires_at = EXCLUDED.expires_at
		RETURNING ` + membershipColumns
	return scanMembership(r.db.QueryRowContext(ctx, q, m.ID, m.UserID, m.Plan, m.Status, m.StartedAt, m.ExpiresAt))
}

// List returns memberships matching the filter, latest expiry first.
func (r *MembershipPostgres) List(ctx context.Context, f model.MembershipFilter) (*model.Page[model.Membership], error) {
	var w where
	if f.Plan != "" {
		w.add("plan = ?", f.Plan)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memberships`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(repository.PageQuery{Limit: f.Limit, Offset: f.Offset})
	rows, err := r.db.QueryContext(ctx, `SELECT `+membershipColumns+` FROM memberships`+w.String()+` ORDER BY expires_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Membership]{Items: items, Total: total}, nil
}

// ExpireDue marks lapsed active memberships as expired.
func (r *MembershipPostgres) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE memberships SET status = 'expired' WHERE status = 'active' AND expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
