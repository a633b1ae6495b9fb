package user

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterEndpoint(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	body := `{"email":"jane@example.com","password":"s3cret","firstName":"Jane","lastName":"Doe","phoneNumber":"555-0101"}`
	req := httptest.NewRequest("POST", "/api/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, b)
	}

	b, _ := io.ReadAll(res.Body)
	out := string(b)
	if !strings.Contains(out, "jane@example.com") || !strings.Contains(out, `"userId":1`) {
		t.Fatalf("unexpected body: %s", out)
	}
	if strings.Contains(out, "password") {
		t.Fatalf("response must not expose the password field: %s", out)
	}
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	req := httptest.NewRequest("POST", "/api/users/register", strings.NewReader(`{"email":"jane@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", res.StatusCode)
	}
}

func TestRegisterEndpoint_DuplicateEmailIs400(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	body := `{"email":"jane@example.com","password":"s3cret"}`
	for i, wantStatus := range []int{fiber.StatusOK, fiber.StatusBadRequest} {
		req := httptest.NewRequest("POST", "/api/users/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if res.StatusCode != wantStatus {
			t.Fatalf("request %d: expected %d, got %d", i, wantStatus, res.StatusCode)
		}
	}
}
