package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// MockOrganizationService is a testify mock for service.OrganizationService.
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) Create(ctx context.Context, userID string, in service.OrganizationInput) (*model.Organization, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationService) Get(ctx context.Context, userID, orgID string) (*model.Organization, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListForUser(ctx context.Context, userID string) ([]model.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Organization), args.Error(1)
}

func (m *MockOrganizationService) Update(ctx context.Context, userID, orgID string, in service.OrganizationUpdateInput) (*model.Organization, error) {
	args := m.Called(ctx, userID, orgID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationService) Delete(ctx context.Context, userID, orgID string) error {
	args := m.Called(ctx, userID, orgID)
	return args.Error(0)
}

func (m *MockOrganizationService) ListMembers(ctx context.Context, userID, orgID string) ([]model.Member, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockOrganizationService) UpdateMemberRole(ctx context.Context, actorID, orgID, targetID string, role model.MemberRole) (*model.Member, error) {
	args := m.Called(ctx, actorID, orgID, targetID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockOrganizationService) RemoveMember(ctx context.Context, actorID, orgID, targetID string) error {
	args := m.Called(ctx, actorID, orgID, targetID)
	return args.Error(0)
}

func (m *MockOrganizationService) Leave(ctx context.Context, userID, orgID string) error {
	args := m.Called(ctx, userID, orgID)
	return args.Error(0)
}

func (m *MockOrganizationService) Invite(ctx context.Context, actorID, orgID string, in service.InviteInput) (*model.Invitation, error) {
	args := m.Called(ctx, actorID, orgID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockOrganizationService) ListInvitations(ctx context.Context, actorID, orgID string) ([]model.Invitation, error) {
	args := m.Called(ctx, actorID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invitation), args.Error(1)
}

func (m *MockOrganizationService) Revoke(ctx context.Context, actorID, orgID, invitationID string) error {
	args := m.Called(ctx, actorID, orgID, invitationID)
	return args.Error(0)
}

func (m *MockOrganizationService) Accept(ctx context.Context, userID, token string) (*model.Member, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockOrganizationService) ExpireInvitations(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
