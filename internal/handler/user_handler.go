package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	if role := c.Query("role"); role != "" {
		users, err := h.userService.ListByRole(c.Context(), role)
		if err != nil {
			if err == service.ErrInvalidRole {
				return middleware.BadRequest("Invalid role")
			}
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
	}

	users, err := h.userService.GetAllUsers(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not authenticated")
	}
	if actor.ID != userID && !actor.HasRole(string(domain.RoleAdmin)) {
		return middleware.Forbidden("You can only update your own profile")
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), userID, input)
	if err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		if err == service.ErrEmailExists {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	meta := &service.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	if err := h.userService.AssignRole(c.Context(), actor.ID, input, meta); err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		if err == service.ErrInvalidRole {
			return middleware.BadRequest("Invalid role")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role assigned successfully",
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	actor := middleware.GetCurrentUser(c)
	if actor != nil && actor.ID == userID {
		return middleware.BadRequest("You cannot delete your own account")
	}

	if err := h.userService.Delete(c.Context(), userID); err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
