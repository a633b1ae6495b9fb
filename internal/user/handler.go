package user

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/users/register", h.register)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if payload.isMissingRequiredFields() {
		return c.Status(fiber.StatusBadRequest).SendString("Missing required fields")
	}

	created, err := h.service.Register(User{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	return c.JSON(sanitizeUser(created))
}

func (r *registerRequest) isMissingRequiredFields() bool {
	return r.Email == "" || r.Password == ""
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
