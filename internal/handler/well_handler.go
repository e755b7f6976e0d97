package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/service"
)

type WellHandler struct {
	wellService service.WellService
}

func NewWellHandler(wellService service.WellService) *WellHandler {
	return &WellHandler{wellService: wellService}
}

func (h *WellHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateWellInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	well, err := h.wellService.Create(c.Context(), user.ID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(well)
}

func (h *WellHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	if term := c.Query("search"); term != "" {
		result, err := h.wellService.Search(c.Context(), term, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	// Owners only see their own wells. Analysts and admins see all.
	if !user.HasRole(string(domain.RoleAnalyst)) {
		result, err := h.wellService.ListByOwner(c.Context(), user.ID, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	result, err := h.wellService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *WellHandler) Get(c *fiber.Ctx) error {
	wellID, err := uuid.Parse(c.Params("wellId"))
	if err != nil {
		return middleware.BadRequest("Invalid well ID")
	}

	well, err := h.wellService.GetByID(c.Context(), wellID)
	if err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(well)
}

func (h *WellHandler) Update(c *fiber.Ctx) error {
	wellID, err := uuid.Parse(c.Params("wellId"))
	if err != nil {
		return middleware.BadRequest("Invalid well ID")
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateWellInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	well, err := h.wellService.Update(c.Context(), wellID, user, input)
	if err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		if err == service.ErrNotWellOwner {
			return middleware.Forbidden("You do not own this well")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(well)
}

func (h *WellHandler) Delete(c *fiber.Ctx) error {
	wellID, err := uuid.Parse(c.Params("wellId"))
	if err != nil {
		return middleware.BadRequest("Invalid well ID")
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	if err := h.wellService.Delete(c.Context(), wellID, user); err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		if err == service.ErrNotWellOwner {
			return middleware.Forbidden("You do not own this well")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Well deleted successfully",
	})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
