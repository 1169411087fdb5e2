package permit

import (
	"errors"

	"go-permit/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PermitController struct {
	Service PermitService
}

func NewPermitController(service PermitService) *PermitController {
	return &PermitController{Service: service}
}

// statusForError maps workflow sentinels to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidRoster),
		errors.Is(err, ErrMissingReason):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotCurrentApprover):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAlreadyDecided),
		errors.Is(err, ErrPermitFinalized),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrDuplicateID):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// CreatePermit godoc
// @Summary Submit a new work permit
// @Description Creates a permit from form data and an ordered approver roster and routes it for approval
// @Tags permits
// @Accept json
// @Produce json
// @Param permit body CreatePermitInput true "Permit form payload"
// @Success 201 {object} Permit
// @Failure 400 {object} map[string]string "Invalid request body or roster"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/permits [post]
func (c *PermitController) CreatePermit(ctx *fiber.Ctx) error {
	var input CreatePermitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	requester := Requester{
		Name:       claims.Name,
		Department: claims.Department,
		Email:      claims.Email,
	}

	p, err := c.Service.CreatePermit(ctx.UserContext(), input, requester, claims.UserID)
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(p)
}

// GetPermit godoc
// @Summary Get a permit
// @Description Fetch a single permit with its approval progress
// @Tags permits
// @Produce json
// @Param id path string true "Permit ID"
// @Success 200 {object} Permit
// @Failure 404 {object} map[string]string "Permit not found"
// @Router /api/permits/{id} [get]
func (c *PermitController) GetPermit(ctx *fiber.Ctx) error {
	p, err := c.Service.GetPermit(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// ListPermits godoc
// @Summary List permits
// @Description List permits, optionally filtered by status, type, department or search term
// @Tags permits
// @Produce json
// @Param status query string false "Lifecycle status"
// @Param type query string false "Permit type"
// @Param department query string false "Requester department"
// @Param search query string false "Substring match on title / requester name"
// @Success 200 {array} Permit
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/permits [get]
func (c *PermitController) ListPermits(ctx *fiber.Ctx) error {
	filter := ListFilter{
		Status:     PermitStatus(ctx.Query("status")),
		Type:       PermitType(ctx.Query("type")),
		Department: ctx.Query("department"),
		Search:     ctx.Query("search"),
	}

	permits, err := c.Service.ListPermits(ctx.UserContext(), filter)
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(permits)
}

// PendingForMe godoc
// @Summary List permits awaiting my decision
// @Description Permits whose current approver is the authenticated user
// @Tags permits
// @Produce json
// @Success 200 {array} Permit
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/permits/pending [get]
func (c *PermitController) PendingForMe(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	permits, err := c.Service.PendingForApprover(ctx.UserContext(), claims.Email)
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(permits)
}

// Stats godoc
// @Summary Permit counts by status
// @Tags permits
// @Produce json
// @Success 200 {object} Stats
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/permits/stats [get]
func (c *PermitController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.Service.Stats(ctx.UserContext())
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(stats)
}

// Approve godoc
// @Summary Approve the current step
// @Description Records an approval by the authenticated user, who must be the current approver
// @Tags permits
// @Accept json
// @Produce json
// @Param id path string true "Permit ID"
// @Param body body DecideInput false "Optional comment"
// @Success 200 {object} Permit
// @Failure 403 {object} map[string]string "Not the current approver"
// @Failure 409 {object} map[string]string "Already decided, finalized or concurrent conflict"
// @Router /api/permits/{id}/approve [post]
func (c *PermitController) Approve(ctx *fiber.Ctx) error {
	return c.decide(ctx, DecisionApprove)
}

// Reject godoc
// @Summary Reject the current step
// @Description Records a rejection by the authenticated user; a reason is required and the permit terminates
// @Tags permits
// @Accept json
// @Produce json
// @Param id path string true "Permit ID"
// @Param body body DecideInput true "Rejection reason"
// @Success 200 {object} Permit
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 403 {object} map[string]string "Not the current approver"
// @Failure 409 {object} map[string]string "Already decided, finalized or concurrent conflict"
// @Router /api/permits/{id}/reject [post]
func (c *PermitController) Reject(ctx *fiber.Ctx) error {
	return c.decide(ctx, DecisionReject)
}

func (c *PermitController) decide(ctx *fiber.Ctx, decision Decision) error {
	var body DecideInput
	_ = ctx.BodyParser(&body)

	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	p, err := c.Service.Decide(ctx.UserContext(), ctx.Params("id"), claims.Email, decision, body.Comments)
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}
