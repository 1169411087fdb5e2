package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListByPermit godoc
// @Summary List audit entries for a permit
// @Description Returns the decision history recorded for a permit, newest first
// @Tags audit
// @Produce json
// @Param id path string true "Permit ID"
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {array} models.AuditLog
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/audit/permits/{id} [get]
func (c *AuditController) ListByPermit(ctx *fiber.Ctx) error {
	permitID := ctx.Params("id")
	limit, _ := strconv.ParseInt(ctx.Query("limit", "50"), 10, 64)

	logs, err := c.Service.ListByPermit(ctx.UserContext(), permitID, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(logs)
}
