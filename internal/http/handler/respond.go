package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storeadmin/internal/model"
)

type successPayload struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type listPayload[T any] struct {
	Status string `json:"status"`
	Data   []T    `json:"data"`
	Total  int    `json:"total"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(successPayload{Status: "success", Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(successPayload{Status: "success", Data: data})
}

func list[T any](c *fiber.Ctx, p *model.Page[T]) error {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(listPayload[T]{Status: "success", Data: items, Total: p.Total})
}

// paramID returns a UUID path parameter. Anything else cannot name a row, so
// callers answer 404.
func paramID(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func notFound(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
}

// badRequest is a malformed request detected before any service is called.
type badRequest struct {
	code    string
	message string
}

func (e *badRequest) Error() string { return e.message }

// pagination reads limit and offset. Range clamping is left to the services.
func pagination(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, &badRequest{"INVALID_LIMIT", "invalid limit"}
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, &badRequest{"INVALID_OFFSET", "invalid offset"}
	}
	return limit, offset, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &badRequest{"INVALID_" + strings.ToUpper(key), "invalid " + key}
	}
	return n, nil
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &badRequest{"INVALID_BODY", "request body is not valid JSON"}
	}
	return nil
}
