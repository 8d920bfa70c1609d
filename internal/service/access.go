package service

import (
	"context"
	"errors"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// orgAccess resolves a user's membership in an organization.
type orgAccess struct {
	orgs repository.OrganizationRepository
}

// member returns the caller's membership. A missing organization is ErrNotFound,
// an existing one the user does not belong to is ErrForbidden.
func (a orgAccess) member(ctx context.Context, orgID, userID string) (*model.Member, error) {
	if orgID == "" {
		return nil, ErrIDRequired
	}
	m, err := a.orgs.FindMember(ctx, orgID, userID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(notFound(err), ErrNotFound) {
		return nil, err
	}
	if _, err := a.orgs.FindByID(ctx, orgID); err != nil {
		return nil, notFound(err)
	}
	return nil, ErrForbidden
}

// manager returns the caller's membership when it is owner or admin.
func (a orgAccess) manager(ctx context.Context, orgID, userID string) (*model.Member, error) {
	m, err := a.member(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if !m.Role.CanManage() {
		return nil, ErrForbidden
	}
	return m, nil
}
