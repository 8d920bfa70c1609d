package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/service"
)

func ListProductReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.ListByProduct(c.UserContext(), id, middleware.IsAdmin(c), limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

func CreateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var in service.ReviewInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		r, err := svc.Create(c.UserContext(), middleware.UserID(c), id, in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, r)
	}
}

// DeleteReview removes a review. Authors delete their own; admins delete any.
func DeleteReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		claims := middleware.Claims(c)
		if err := svc.Delete(c.UserContext(), claims.UserID(), claims.Role, id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
