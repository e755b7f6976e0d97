package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/service"
)

type AnalysisHandler struct {
	analysisService service.AnalysisService
}

func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

func (h *AnalysisHandler) CreateRequest(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateAnalysisRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	request, err := h.analysisService.SubmitRequest(c.Context(), user.ID, input)
	if err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		if err == service.ErrInvalidOutcome || err == service.ErrMissingSampledAt {
			return middleware.BadRequest(err.Error())
		}
		if errors.Is(err, domain.ErrInvalidParameter) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *AnalysisHandler) ListRequests(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	params := getPaginationParams(c)

	// Analysts see only their own submissions. Admins see the full queue.
	if !user.HasRole(string(domain.RoleAdmin)) {
		result, err := h.analysisService.ListRequestsByAnalyst(c.Context(), user.ID, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	var status *domain.RequestStatus
	if s := c.Query("status"); s != "" {
		st := domain.RequestStatus(s)
		if !st.IsValid() {
			return middleware.BadRequest("Invalid status filter")
		}
		status = &st
	}

	result, err := h.analysisService.ListRequests(c.Context(), status, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnalysisHandler) GetRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	request, err := h.analysisService.GetRequest(c.Context(), requestID)
	if err != nil {
		if err == service.ErrRequestNotFound {
			return middleware.NotFound("Analysis request not found")
		}
		return err
	}

	if !user.HasRole(string(domain.RoleAdmin)) && request.AnalystID != user.ID {
		return middleware.Forbidden("You can only view your own requests")
	}

	return c.Status(fiber.StatusOK).JSON(request)
}

func (h *AnalysisHandler) Approve(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	meta := &service.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	analysis, err := h.analysisService.Approve(c.Context(), requestID, user.ID, meta)
	if err != nil {
		if err == service.ErrRequestNotFound {
			return middleware.NotFound("Analysis request not found")
		}
		if err == service.ErrAlreadyProcessed {
			return middleware.Conflict("Request has already been processed")
		}
		if err == service.ErrDuplicateAnalysis {
			return middleware.Conflict("An analysis for this well, analyst and day already exists")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Request approved",
		"analysis": analysis,
	})
}

func (h *AnalysisHandler) Reject(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.ReviewAnalysisRequestInput
	_ = c.BodyParser(&input)

	meta := &service.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	if err := h.analysisService.Reject(c.Context(), requestID, user.ID, input.Reason, meta); err != nil {
		if err == service.ErrRequestNotFound {
			return middleware.NotFound("Analysis request not found")
		}
		if err == service.ErrAlreadyProcessed {
			return middleware.Conflict("Request has already been processed")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Request rejected",
	})
}

func (h *AnalysisHandler) ListAnalyses(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter, err := parseAnalysisFilter(c)
	if err != nil {
		return middleware.BadRequest(err.Error())
	}

	result, err := h.analysisService.ListAnalyses(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("analysisId"))
	if err != nil {
		return middleware.BadRequest("Invalid analysis ID")
	}

	analysis, err := h.analysisService.GetAnalysis(c.Context(), analysisID)
	if err != nil {
		if err == service.ErrAnalysisNotFound {
			return middleware.NotFound("Analysis not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(analysis)
}

func (h *AnalysisHandler) ExportCSV(c *fiber.Ctx) error {
	filter, err := parseAnalysisFilter(c)
	if err != nil {
		return middleware.BadRequest(err.Error())
	}

	data, err := h.analysisService.ExportCSV(c.Context(), filter)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("analyses-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)

	return c.Status(fiber.StatusOK).Send(data)
}

func parseAnalysisFilter(c *fiber.Ctx) (domain.AnalysisFilter, error) {
	var filter domain.AnalysisFilter

	if s := c.Query("well_id"); s != "" {
		wellID, err := uuid.Parse(s)
		if err != nil {
			return filter, fmt.Errorf("invalid well_id filter")
		}
		filter.WellID = &wellID
	}
	if s := c.Query("analyst_id"); s != "" {
		analystID, err := uuid.Parse(s)
		if err != nil {
			return filter, fmt.Errorf("invalid analyst_id filter")
		}
		filter.AnalystID = &analystID
	}
	if s := c.Query("outcome"); s != "" {
		outcome := domain.SampleOutcome(s)
		if !outcome.IsValid() {
			return filter, fmt.Errorf("invalid outcome filter")
		}
		filter.Outcome = &outcome
	}
	if s := c.Query("from"); s != "" {
		from, err := parseDateParam(s)
		if err != nil {
			return filter, fmt.Errorf("invalid from date")
		}
		filter.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := parseDateParam(s)
		if err != nil {
			return filter, fmt.Errorf("invalid to date")
		}
		filter.To = &to
	}

	return filter, nil
}

func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
