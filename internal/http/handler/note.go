package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/service"
)

func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var in service.NoteInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		n, err := svc.Create(c.UserContext(), middleware.UserID(c), orgID, in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, n)
	}
}

func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), middleware.UserID(c), orgID, c.Query("search"), limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

func GetNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "noteId")
		if !valid {
			return notFound(c)
		}
		n, err := svc.Get(c.UserContext(), middleware.UserID(c), orgID, id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, n)
	}
}

func UpdateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "noteId")
		if !valid {
			return notFound(c)
		}
		var in service.NoteInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		n, err := svc.Update(c.UserContext(), middleware.UserID(c), orgID, id, in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, n)
	}
}

func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "noteId")
		if !valid {
			return notFound(c)
		}
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), orgID, id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
