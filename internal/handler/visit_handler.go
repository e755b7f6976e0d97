package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/service"
)

type VisitHandler struct {
	visitService service.VisitService
}

func NewVisitHandler(visitService service.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

func (h *VisitHandler) Schedule(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.ScheduleVisitInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	visit, err := h.visitService.Schedule(c.Context(), user.ID, input)
	if err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(visit)
}

func (h *VisitHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	params := getPaginationParams(c)

	if s := c.Query("well_id"); s != "" {
		wellID, err := uuid.Parse(s)
		if err != nil {
			return middleware.BadRequest("Invalid well ID")
		}
		result, err := h.visitService.ListByWell(c.Context(), wellID, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	result, err := h.visitService.ListByAnalyst(c.Context(), user.ID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *VisitHandler) Get(c *fiber.Ctx) error {
	visitID, err := uuid.Parse(c.Params("visitId"))
	if err != nil {
		return middleware.BadRequest("Invalid visit ID")
	}

	visit, err := h.visitService.GetByID(c.Context(), visitID)
	if err != nil {
		if err == service.ErrVisitNotFound {
			return middleware.NotFound("Visit not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(visit)
}

func (h *VisitHandler) Update(c *fiber.Ctx) error {
	visitID, err := uuid.Parse(c.Params("visitId"))
	if err != nil {
		return middleware.BadRequest("Invalid visit ID")
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateVisitInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	visit, err := h.visitService.Update(c.Context(), visitID, user, input)
	if err != nil {
		if err == service.ErrVisitNotFound {
			return middleware.NotFound("Visit not found")
		}
		if err == service.ErrVisitNotOwned {
			return middleware.Forbidden("You can only update your own visits")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(visit)
}

func (h *VisitHandler) Complete(c *fiber.Ctx) error {
	visitID, err := uuid.Parse(c.Params("visitId"))
	if err != nil {
		return middleware.BadRequest("Invalid visit ID")
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var body struct {
		Notes *string `json:"notes,omitempty"`
	}
	_ = c.BodyParser(&body)

	visit, err := h.visitService.Complete(c.Context(), visitID, user, body.Notes)
	if err != nil {
		if err == service.ErrVisitNotFound {
			return middleware.NotFound("Visit not found")
		}
		if err == service.ErrVisitNotOwned {
			return middleware.Forbidden("You can only complete your own visits")
		}
		if err == service.ErrVisitNotPending {
			return middleware.Conflict("Visit is not scheduled")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(visit)
}
