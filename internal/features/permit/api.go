package permit

import (
	"go-permit/internal/config"
	"go-permit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermitApi struct {
	controller *PermitController
	config     *config.Config
}

func NewPermitApi(controller *PermitController, config *config.Config) *PermitApi {
	return &PermitApi{
		controller: controller,
		config:     config,
	}
}

func (h *PermitApi) Setup(app *fiber.App) {
	permits := app.Group("/api/permits", middleware.AuthMiddleware(h.config.SkipAuth))

	permits.Post("/", h.controller.CreatePermit)
	permits.Get("/", h.controller.ListPermits)
	permits.Get("/stats", h.controller.Stats)
	permits.Get("/pending", h.controller.PendingForMe)
	permits.Get("/:id", h.controller.GetPermit)
	permits.Post("/:id/approve", h.controller.Approve)
	permits.Post("/:id/reject", h.controller.Reject)
}
