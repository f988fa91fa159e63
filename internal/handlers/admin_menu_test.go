package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"bessonnitsa/internal/database"
	"bessonnitsa/internal/models"
	"bessonnitsa/internal/store"
)

// testDB mirrors the store package harness: connect to the local test
// database, run migrations, skip when it is not reachable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "postgres://" + envOr("POSTGRES_USER", "bessonnitsa") +
		":" + envOr("POSTGRES_PASSWORD", "changeme") +
		"@" + envOr("POSTGRES_HOST", "localhost") +
		":" + envOr("POSTGRES_PORT", "5432") +
		"/" + envOr("POSTGRES_DB", "bessonnitsa") + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// requestWithID builds a request whose chi route context carries the
// {id} URL parameter, as the router would.
func requestWithID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestImagesUploadPartialSuccess(t *testing.T) {
	db := testDB(t)
	categories := store.NewMenuCategoryStore(db)
	images := store.NewMenuImageStore(db)

	const title = "test-images-partial-success"
	t.Cleanup(func() { db.Exec("DELETE FROM menu_categories WHERE title = $1", title) })

	category, err := categories.Create(&models.MenuCategory{
		Title:       title,
		Icon:        models.MenuIconUtensils,
		Description: "partial upload test",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	admin := NewAdmin(store.NewEventStore(db), categories, images, fakeS3(t), nil)

	// Three files: two real page scans and one that fails the image
	// sniff. The bad file must not stop the others.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range []struct {
		name    string
		content []byte
	}{
		{"page-1.png", pngHeader},
		{"notes.txt", []byte("not an image at all")},
		{"page-2.png", pngHeader},
	} {
		part, err := mw.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("create form file %q: %v", f.name, err)
		}
		part.Write(f.content)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/api/menu/categories/"+category.ID.String()+"/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = requestWithID(req, category.ID.String())

	rr := httptest.NewRecorder()
	admin.ImagesUpload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		Uploaded []models.MenuImage `json:"uploaded"`
		Failed   []struct {
			Filename string `json:"filename"`
			Error    string `json:"error"`
		} `json:"failed"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Uploaded) != 2 {
		t.Errorf("uploaded: got %d, want 2", len(resp.Uploaded))
	}
	if len(resp.Failed) != 1 {
		t.Fatalf("failed: got %d, want 1", len(resp.Failed))
	}
	if resp.Failed[0].Filename != "notes.txt" {
		t.Errorf("failed filename: got %q, want notes.txt", resp.Failed[0].Filename)
	}
	if resp.Failed[0].Error == "" {
		t.Error("failed entry carries no error message")
	}

	// Exactly the two successful files landed as rows.
	rows, err := images.ListByCategory(category.ID)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("image rows: got %d, want 2", len(rows))
	}
}

func TestImagesUploadUnknownCategory(t *testing.T) {
	db := testDB(t)
	admin := NewAdmin(
		store.NewEventStore(db),
		store.NewMenuCategoryStore(db),
		store.NewMenuImageStore(db),
		fakeS3(t), nil,
	)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("images", "page.png")
	part.Write(pngHeader)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/api/menu/categories/00000000-0000-0000-0000-000000000001/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = requestWithID(req, "00000000-0000-0000-0000-000000000001")

	rr := httptest.NewRecorder()
	admin.ImagesUpload(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}
