package user

import (
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{Service: service}
}

// ListUsers godoc
// @Summary List directory users
// @Description Lists users, optionally filtered by role - used to assemble approver rosters
// @Tags users
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {array} User
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/users [get]
func (c *UserController) ListUsers(ctx *fiber.Ctx) error {
	role := ctx.Query("role")

	var (
		users []User
		err   error
	)
	if role != "" {
		users, err = c.Service.ListByRole(ctx.UserContext(), role)
	} else {
		users, err = c.Service.ListUsers(ctx.UserContext())
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(users)
}

// CreateUser godoc
// @Summary Create a directory user
// @Tags users
// @Accept json
// @Produce json
// @Param user body User true "User"
// @Success 201 {object} map[string]string "User created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var input User
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.CreateUser(ctx.UserContext(), &input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created"})
}
