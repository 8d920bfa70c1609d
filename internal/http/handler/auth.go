package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/service"
)

// Register creates a customer account and returns a session.
//
//	@Summary	Register a customer account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		service.RegisterInput	true	"account"
//	@Success	201		{object}	successPayload
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		sess, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, sess)
	}
}

// Login exchanges credentials for a session.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		service.LoginInput	true	"credentials"
//	@Success	200		{object}	successPayload
//	@Failure	401		{object}	errorPayload
//	@Router		/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		sess, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, sess)
	}
}

// Me returns the authenticated user's profile.
func Me(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, u)
	}
}

// UpdateMe changes the authenticated user's name and avatar.
func UpdateMe(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProfileInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		u, err := svc.UpdateProfile(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, u)
	}
}
