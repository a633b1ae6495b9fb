package image

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func makeImageApp(dir string, known map[int]bool) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(NewDiskStore(dir), repo, ListingGetter(func(id int) error {
		if known[id] {
			return nil
		}
		return errors.New("listing not found")
	}))
	app := fiber.New()
	h := NewHandler(svc)
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app, repo
}

func TestUploadImage_StoresFileAndPersistsAssociation(t *testing.T) {
	dir := t.TempDir()
	app, repo := makeImageApp(dir, map[int]bool{7: true})

	body, contentType := multipartBody(t, "file", "bike.jpg", "jpeg-bytes")
	req := httptest.NewRequest("POST", "/api/listings/7/images", body)
	req.Header.Set("Content-Type", contentType)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, b)
	}

	b, _ := io.ReadAll(res.Body)
	ref := string(b)
	if !strings.HasPrefix(ref, "/uploads/") || !strings.HasSuffix(ref, "_bike.jpg") {
		t.Fatalf("unexpected reference %q", ref)
	}

	// file landed on disk
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, found %d", len(entries))
	}

	// association persisted with a display order
	imgs, err := repo.ListByListingID(7)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if len(imgs) != 1 || imgs[0].URL != ref || imgs[0].DisplayOrder != 1 {
		t.Fatalf("association not persisted as expected: %+v", imgs)
	}
}

func TestUploadImage_MissingListingWritesNothing(t *testing.T) {
	dir := t.TempDir()
	app, repo := makeImageApp(dir, nil)

	body, contentType := multipartBody(t, "file", "bike.jpg", "jpeg-bytes")
	req := httptest.NewRequest("POST", "/api/listings/404/images", body)
	req.Header.Set("Content-Type", contentType)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown listing, got %d", res.StatusCode)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("no file should be written for a failed upload, found %d", len(entries))
	}
	if imgs, _ := repo.ListByListingID(404); len(imgs) != 0 {
		t.Fatalf("no association should be persisted, found %d", len(imgs))
	}
}

func TestUploadImage_FileFieldRequired(t *testing.T) {
	app, _ := makeImageApp(t.TempDir(), map[int]bool{7: true})

	req := httptest.NewRequest("POST", "/api/listings/7/images", strings.NewReader(""))
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without a file part, got %d", res.StatusCode)
	}
}

func TestListImages_OrderedByDisplayOrder(t *testing.T) {
	app, repo := makeImageApp(t.TempDir(), map[int]bool{7: true})

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if _, err := repo.Create(Image{ListingID: 7, URL: "/uploads/" + name}); err != nil {
			t.Fatalf("seed image: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/api/listings/7/images", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !(strings.Index(body, "a.jpg") < strings.Index(body, "b.jpg") &&
		strings.Index(body, "b.jpg") < strings.Index(body, "c.jpg")) {
		t.Fatalf("images not in display order: %s", body)
	}
}

func TestListByListingIDs_GroupsURLs(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	for _, img := range []Image{
		{ListingID: 1, URL: "/uploads/a.jpg"},
		{ListingID: 1, URL: "/uploads/b.jpg"},
		{ListingID: 2, URL: "/uploads/c.jpg"},
	} {
		if _, err := repo.Create(img); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out, err := repo.ListByListingIDs([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out[1]) != 2 || len(out[2]) != 1 {
		t.Fatalf("unexpected grouping: %v", out)
	}
	if _, ok := out[3]; ok {
		t.Fatalf("listing without images must not appear in the map")
	}
}
