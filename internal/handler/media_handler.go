package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/service"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) UploadWellPhoto(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	wellID, err := uuid.Parse(c.Params("wellId"))
	if err != nil {
		return middleware.BadRequest("Invalid well ID")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return middleware.BadRequest("Photo file is required")
	}

	if file.Size > 10*1024*1024 {
		return middleware.BadRequest("File size must be less than 10MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType != "image/jpeg" && mimeType != "image/png" && mimeType != "image/webp" {
		return middleware.BadRequest("Only JPEG, PNG and WebP images are allowed")
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	photoURL, err := h.mediaService.UploadWellPhoto(c.Context(), user, wellID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		if err == service.ErrNotWellOwner {
			return middleware.Forbidden("You do not own this well")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"photo_url": photoURL,
	})
}

func (h *MediaHandler) RemoveWellPhoto(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	wellID, err := uuid.Parse(c.Params("wellId"))
	if err != nil {
		return middleware.BadRequest("Invalid well ID")
	}

	if err := h.mediaService.RemoveWellPhoto(c.Context(), user, wellID); err != nil {
		if err == service.ErrWellNotFound {
			return middleware.NotFound("Well not found")
		}
		if err == service.ErrNotWellOwner {
			return middleware.Forbidden("You do not own this well")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Photo removed successfully",
	})
}
