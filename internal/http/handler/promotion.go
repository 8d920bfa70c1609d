package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/service"
)

func ListPromotions(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), c.QueryBool("active_only"), limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

// CreatePromotion adds a discount code.
//
//	@Summary	Create promotion
//	@Tags		promotions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.PromotionInput	true	"promotion"
//	@Success	201		{object}	successPayload
//	@Failure	409		{object}	errorPayload	"code taken"
//	@Router		/promotions [post]
func CreatePromotion(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PromotionInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, p)
	}
}

func GetPromotion(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

func UpdatePromotion(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var in service.PromotionInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		p, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

func DeactivatePromotion(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		p, err := svc.Deactivate(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

func DeletePromotion(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type validatePromotionRequest struct {
	Code          string `json:"code"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

// ValidatePromotion quotes the discount a code gives on a subtotal.
//
//	@Summary	Quote a promotion code
//	@Tags		promotions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		validatePromotionRequest	true	"code and subtotal"
//	@Success	200		{object}	successPayload
//	@Failure	422		{object}	errorPayload	"code not applicable"
//	@Router		/promotions/validate [post]
func ValidatePromotion(svc service.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req validatePromotionRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		q, err := svc.Validate(c.UserContext(), req.Code, req.SubtotalCents)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, q)
	}
}
