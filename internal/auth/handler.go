package auth

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	checker CredentialChecker
	tokens  *TokenManager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewHandler(checker CredentialChecker, tokens *TokenManager) *Handler {
	return &Handler{checker: checker, tokens: tokens}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/login", h.login)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	principal, err := h.checker.Check(payload.Username, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).SendString("Invalid credentials")
	}

	signed, err := h.tokens.Generate(principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":    signed,
		"username": principal.Username,
	})
}
