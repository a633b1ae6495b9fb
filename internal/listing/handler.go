package listing

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	// search must be registered ahead of the :id route to avoid a param collision
	app.Get("/api/listings/search", h.searchListings)
	app.Get("/api/listings/:id", h.getListing)
	app.Get("/api/public/listings", h.getPublicListings)
	app.Get("/api/public/listings/:id", h.getPublicListingDetail)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/listings", h.createListing)
}

func (h *Handler) createListing(c *fiber.Ctx) error {
	d := new(Draft)
	if err := c.BodyParser(d); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if ves := validateDraft(d); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	ownerID, err := userIDFromToken(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(*d, ownerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	return c.JSON(created)
}

func (h *Handler) getListing(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid listing id")
	}

	l, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	return c.JSON(l)
}

func (h *Handler) searchListings(c *fiber.Ctx) error {
	f := Filter{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("invalid minPrice")
		}
		f.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("invalid maxPrice")
		}
		f.MaxPrice = &v
	}
	if raw := c.Query("categoryId"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("invalid categoryId")
		}
		f.CategoryID = &v
	}

	pr := NewPageRequest(
		c.QueryInt("page", 0),
		c.QueryInt("size", defaultPageSize),
		c.Query("sortBy", DefaultSortField),
		c.Query("sortDirection", "desc"),
	)

	page, err := h.service.Search(f, pr)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handler) getPublicListings(c *fiber.Ctx) error {
	page, err := h.service.PublicBrowse(
		c.QueryInt("page", 0),
		c.QueryInt("size", defaultPageSize),
		c.Query("category"),
		c.Query("location"),
	)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handler) getPublicListingDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid listing id")
	}

	detail, err := h.service.Detail(id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	return c.JSON(detail)
}

const maxDescriptionLength = 2000

func validateDraft(d *Draft) map[string]string {
	errs := map[string]string{}
	if d.Title == "" {
		errs["title"] = "title is required"
	}
	if len(d.Description) > maxDescriptionLength {
		errs["description"] = "description is too long"
	}
	if d.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if d.CategoryID == 0 {
		errs["categoryId"] = "categoryId is required"
	}
	return errs
}

// userIDFromToken extracts the authenticated user's id from the JWT placed
// in locals by the auth middleware.
func userIDFromToken(c *fiber.Ctx) (int, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	if raw, ok := claims["user_id"]; ok {
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return 0, fiber.ErrUnauthorized
			}
			return id, nil
		}
	}
	return 0, fiber.ErrUnauthorized
}
