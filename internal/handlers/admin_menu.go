package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bessonnitsa/internal/cache"
	"bessonnitsa/internal/models"
)

// --- Menu categories ---

// MenuList returns all categories with their images attached, ordered
// for display. The admin console and the public menu share this shape.
func (a *Admin) MenuList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list menu categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}

	images, err := a.imageStore.List()
	if err != nil {
		slog.Error("list menu images failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": attachImages(categories, images),
	})
}

// attachImages associates images to categories by matching category_id,
// preserving the display order of both lists.
func attachImages(categories []models.MenuCategory, images []models.MenuImage) []models.MenuCategory {
	byCategory := make(map[uuid.UUID][]models.MenuImage, len(categories))
	for _, img := range images {
		byCategory[img.CategoryID] = append(byCategory[img.CategoryID], img)
	}
	for i := range categories {
		categories[i].Images = byCategory[categories[i].ID]
	}
	return categories
}

// categoryRequest is the JSON body of a category create/update.
type categoryRequest struct {
	Title        string          `json:"title"`
	Icon         models.MenuIcon `json:"icon"`
	Description  string          `json:"description"`
	DisplayOrder int             `json:"display_order"`
}

func (req *categoryRequest) input() *categoryInput {
	icon := req.Icon
	if icon == "" {
		icon = models.MenuIconUtensils
	}
	return &categoryInput{
		Title:        req.Title,
		Description:  req.Description,
		Icon:         icon,
		DisplayOrder: req.DisplayOrder,
	}
}

// CategoryCreate validates and inserts a new menu category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := req.input()
	if msg := validateCategory(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.categoryStore.Create(&models.MenuCategory{
		Title:        in.Title,
		Icon:         in.Icon,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		slog.Error("create menu category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save category")
		return
	}

	a.invalidate(r, cache.MenuKey)
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate validates and updates an existing menu category.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := a.categoryStore.FindByID(id)
	if err != nil {
		slog.Error("find menu category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := req.input()
	if msg := validateCategory(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	category.Title = in.Title
	category.Icon = in.Icon
	category.Description = in.Description
	category.DisplayOrder = in.DisplayOrder

	if err := a.categoryStore.Update(category); err != nil {
		slog.Error("update menu category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save category")
		return
	}

	a.invalidate(r, cache.MenuKey)
	writeJSON(w, http.StatusOK, category)
}

// CategoryDelete removes the category row. Its image rows cascade in the
// database; their storage objects are left in place.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := a.categoryStore.Delete(id); err != nil {
		slog.Error("delete menu category failed", "error", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	a.invalidate(r, cache.MenuKey)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- Menu images ---

// uploadFailure reports one file that could not be processed.
type uploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ImagesUpload uploads a batch of menu page images to a category. Files
// are processed strictly one at a time; a failure on one file is
// reported but does not stop the rest, so partial success is possible
// and expected. Each successful upload inserts its own menu_images row.
func (a *Admin) ImagesUpload(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := a.categoryStore.FindByID(categoryID)
	if err != nil {
		slog.Error("find menu category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize + 1024); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "select a category and at least one image")
		return
	}

	var uploaded []models.MenuImage
	var failed []uploadFailure

	for _, fh := range files {
		url, err := uploadImage(r.Context(), a.storageClient, a.menuBucket(), fh)
		if err != nil {
			slog.Warn("menu image upload failed", "error", err, "filename", fh.Filename)
			failed = append(failed, uploadFailure{Filename: fh.Filename, Error: err.Error()})
			continue
		}

		img, err := a.imageStore.Create(&models.MenuImage{
			CategoryID: categoryID,
			ImageURL:   url,
		})
		if err != nil {
			slog.Error("insert menu image failed", "error", err, "filename", fh.Filename)
			failed = append(failed, uploadFailure{Filename: fh.Filename, Error: "failed to save image"})
			continue
		}
		uploaded = append(uploaded, *img)
	}

	if len(uploaded) > 0 {
		a.invalidate(r, cache.MenuKey)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"uploaded": uploaded,
		"failed":   failed,
	})
}

// ImageDelete removes a menu image row. The storage object is not touched.
func (a *Admin) ImageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := a.imageStore.Delete(id); err != nil {
		slog.Error("delete menu image failed", "error", err, "image_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}

	a.invalidate(r, cache.MenuKey)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
