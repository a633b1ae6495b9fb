package image

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/listings/:listingId/images", h.listImages)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/listings/:listingId/images", h.uploadImage)
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	listingID, err := strconv.Atoi(c.Params("listingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid listing id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("file is required")
	}

	ref, err := h.service.Attach(listingID, file)
	if err != nil {
		if err == ErrListingNotFound {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return err
	}
	return c.SendString(ref)
}

func (h *Handler) listImages(c *fiber.Ctx) error {
	listingID, err := strconv.Atoi(c.Params("listingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid listing id")
	}

	images, err := h.service.List(listingID)
	if err != nil {
		if err == ErrListingNotFound {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return err
	}
	return c.JSON(images)
}
