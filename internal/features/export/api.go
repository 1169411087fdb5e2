package export

import (
	"go-permit/internal/config"
	"go-permit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) *ExportApi {
	return &ExportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ExportApi) Setup(app *fiber.App) {
	export := app.Group("/api/export", middleware.AuthMiddleware(h.config.SkipAuth))

	export.Get("/permits", h.controller.ExportRegister)
}
