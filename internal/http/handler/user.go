package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), model.UserFilter{
			Search: c.Query("search"),
			Role:   model.UserRole(c.Query("role")),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, u)
	}
}

type roleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole promotes or demotes an account. Admins cannot change their own role.
func UpdateUserRole(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var req roleRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		u, err := svc.UpdateRole(c.UserContext(), middleware.UserID(c), id, model.UserRole(req.Role))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, u)
	}
}

func DeleteUser(svc service.UserService) fiber.Handler {
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
