package middleware

import "github.com/gofiber/fiber/v2"

// Noop calls the next handler. Optional middleware returns it when switched off.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
