package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

type notificationListPayload struct {
	Status string               `json:"status"`
	Data   []model.Notification `json:"data"`
	Total  int                  `json:"total"`
	Unread int                  `json:"unread"`
}

// ListNotifications lists the caller's notifications.
//
//	@Summary	List notifications
//	@Tags		notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		filter	query		string	false	"all, unread or read"
//	@Param		limit	query		int		false	"page size"
//	@Param		offset	query		int		false	"page offset"
//	@Success	200		{object}	notificationListPayload
//	@Router		/notifications [get]
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), middleware.UserID(c), model.ReadFilter(c.Query("filter")), limit, offset)
		if err != nil {
			return fail(c, err)
		}
		items := res.Items
		if items == nil {
			items = []model.Notification{}
		}
		return c.JSON(notificationListPayload{Status: "success", Data: items, Total: res.Total, Unread: res.Unread})
	}
}

func UnreadNotificationCount(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.UnreadCount(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, fiber.Map{"unread": n})
	}
}

func MarkNotificationRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		if err := svc.MarkRead(c.UserContext(), middleware.UserID(c), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func MarkAllNotificationsRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.MarkAllRead(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, fiber.Map{"updated": n})
	}
}

func DeleteNotification(svc service.NotificationService) fiber.Handler {
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
