package notification

import (
	"go-permit/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{Service: service}
}

// ListMine godoc
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {array} Notification
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/notifications [get]
func (c *NotificationController) ListMine(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	unreadOnly := ctx.Query("unread") == "true"

	notifications, err := c.Service.ListForRecipient(ctx.UserContext(), claims.Email, unreadOnly)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(notifications)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string "Marked read"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	if err := c.Service.MarkRead(ctx.UserContext(), ctx.Params("id"), claims.Email); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Marked read"})
}
