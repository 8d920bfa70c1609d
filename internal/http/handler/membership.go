package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

func MyMembership(svc service.MembershipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.Get(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, m)
	}
}

// Subscribe starts or extends the caller's membership.
//
//	@Summary	Subscribe to a plan
//	@Tags		memberships
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.SubscribeInput	true	"plan and months"
//	@Success	200		{object}	successPayload
//	@Router		/memberships/me [post]
func Subscribe(svc service.MembershipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SubscribeInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		m, err := svc.Subscribe(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, m)
	}
}

func CancelMembership(svc service.MembershipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.Cancel(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, m)
	}
}

func ListMemberships(svc service.MembershipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), model.MembershipFilter{
			Plan:   model.MembershipPlan(c.Query("plan")),
			Status: model.MembershipStatus(c.Query("status")),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}
