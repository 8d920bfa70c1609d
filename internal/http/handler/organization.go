package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// CreateOrganization creates an organization owned by the caller.
//
//	@Summary	Create organization
//	@Tags		organizations
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.OrganizationInput	true	"organization"
//	@Success	201		{object}	successPayload
//	@Failure	409		{object}	errorPayload	"slug taken"
//	@Router		/organizations [post]
func CreateOrganization(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.OrganizationInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		org, err := svc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, org)
	}
}

// ListOrganizations lists the organizations the caller belongs to.
func ListOrganizations(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgs, err := svc.ListForUser(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		if orgs == nil {
			orgs = []model.Organization{}
		}
		return ok(c, orgs)
	}
}

func GetOrganization(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		org, err := svc.Get(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, org)
	}
}

func UpdateOrganization(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var in service.OrganizationUpdateInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		org, err := svc.Update(c.UserContext(), middleware.UserID(c), id, in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, org)
	}
}

func DeleteOrganization(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func ListMembers(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		members, err := svc.ListMembers(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return fail(c, err)
		}
		if members == nil {
			members = []model.Member{}
		}
		return ok(c, members)
	}
}

// UpdateMemberRole changes a member between admin and member. Owner only.
func UpdateMemberRole(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		target, valid := paramID(c, "userId")
		if !valid {
			return notFound(c)
		}
		var req roleRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.UpdateMemberRole(c.UserContext(), middleware.UserID(c), id, target, model.MemberRole(req.Role))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, m)
	}
}

func RemoveMember(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		target, valid := paramID(c, "userId")
		if !valid {
			return notFound(c)
		}
		if err := svc.RemoveMember(c.UserContext(), middleware.UserID(c), id, target); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func LeaveOrganization(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		if err := svc.Leave(c.UserContext(), middleware.UserID(c), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// InviteMember emails an invitation link to join the organization.
//
//	@Summary	Invite member
//	@Tags		organizations
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"organization ID"
//	@Param		body	body		service.InviteInput	true	"invitee"
//	@Success	201		{object}	successPayload
//	@Failure	409		{object}	errorPayload	"already a member or invitation pending"
//	@Router		/organizations/{id}/invitations [post]
func InviteMember(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var in service.InviteInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		inv, err := svc.Invite(c.UserContext(), middleware.UserID(c), id, in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, inv)
	}
}

func ListInvitations(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		invs, err := svc.ListInvitations(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return fail(c, err)
		}
		if invs == nil {
			invs = []model.Invitation{}
		}
		return ok(c, invs)
	}
}

func RevokeInvitation(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		invID, valid := paramID(c, "invId")
		if !valid {
			return notFound(c)
		}
		if err := svc.Revoke(c.UserContext(), middleware.UserID(c), id, invID); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type acceptRequest struct {
	Token string `json:"token"`
}

// AcceptInvitation joins the organization named by an invitation token.
func AcceptInvitation(svc service.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req acceptRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.Accept(c.UserContext(), middleware.UserID(c), req.Token)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, m)
	}
}
