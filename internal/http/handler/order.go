package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// PlaceOrder creates an order for the authenticated customer.
//
//	@Summary	Place order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.PlaceOrderInput	true	"order"
//	@Success	201		{object}	successPayload
//	@Failure	409		{object}	errorPayload	"insufficient stock"
//	@Failure	422		{object}	errorPayload	"promotion not applicable"
//	@Router		/orders [post]
func PlaceOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PlaceOrderInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		o, err := svc.Place(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, o)
	}
}

// ListOrders lists all orders for admins, filtered by status and customer.
func ListOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), model.OrderFilter{
			Status: model.OrderStatus(c.Query("status")),
			UserID: c.Query("user_id"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

// MyOrders lists the authenticated customer's orders.
func MyOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.ListForUser(c.UserContext(), middleware.UserID(c), limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

// GetOrder returns any order to admins and only their own to customers.
func GetOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var (
			o   *model.Order
			err error
		)
		if middleware.IsAdmin(c) {
			o, err = svc.Get(c.UserContext(), id)
		} else {
			o, err = svc.GetForUser(c.UserContext(), middleware.UserID(c), id)
		}
		if err != nil {
			return fail(c, err)
		}
		return ok(c, o)
	}
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateOrderStatus moves an order along its lifecycle.
//
//	@Summary	Update order status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"order ID"
//	@Param		body	body		statusRequest	true	"next status"
//	@Success	200		{object}	successPayload
//	@Failure	422		{object}	errorPayload	"transition not allowed"
//	@Router		/orders/{id}/status [patch]
func UpdateOrderStatus(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var req statusRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		o, err := svc.UpdateStatus(c.UserContext(), id, req.Status)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, o)
	}
}

func CancelOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		o, err := svc.Cancel(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, o)
	}
}
