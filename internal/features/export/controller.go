package export

import (
	"fmt"

	"go-permit/internal/features/permit"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

// ExportRegister godoc
// @Summary Export the permit register
// @Description Downloads permits matching the filter as an xlsx workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Lifecycle status"
// @Param type query string false "Permit type"
// @Param department query string false "Requester department"
// @Success 200 {file} binary
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/export/permits [get]
func (c *ExportController) ExportRegister(ctx *fiber.Ctx) error {
	filter := permit.ListFilter{
		Status:     permit.PermitStatus(ctx.Query("status")),
		Type:       permit.PermitType(ctx.Query("type")),
		Department: ctx.Query("department"),
	}

	data, filename, err := c.Service.ExportRegister(ctx.UserContext(), filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(data)
}
