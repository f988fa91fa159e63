package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bessonnitsa/internal/cache"
	"bessonnitsa/internal/models"
	"bessonnitsa/internal/storage"
	"bessonnitsa/internal/store"
)

// Admin groups the content management HTTP handlers and their
// dependencies. Requests only reach these handlers after the session
// guard middleware has verified an admin role grant.
type Admin struct {
	eventStore    *store.EventStore
	categoryStore *store.MenuCategoryStore
	imageStore    *store.MenuImageStore
	storageClient *storage.Client
	contentCache  *cache.ContentCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient and contentCache may be nil (S3/Valkey not configured).
func NewAdmin(eventStore *store.EventStore, categoryStore *store.MenuCategoryStore, imageStore *store.MenuImageStore, storageClient *storage.Client, contentCache *cache.ContentCache) *Admin {
	return &Admin{
		eventStore:    eventStore,
		categoryStore: categoryStore,
		imageStore:    imageStore,
		storageClient: storageClient,
		contentCache:  contentCache,
	}
}

// invalidate drops cached public responses after a mutation.
func (a *Admin) invalidate(r *http.Request, keys ...string) {
	if a.contentCache != nil {
		a.contentCache.Invalidate(r.Context(), keys...)
	}
}

// --- Events ---

// EventsList returns all events, active and inactive, ordered for display.
func (a *Admin) EventsList(w http.ResponseWriter, r *http.Request) {
	events, err := a.eventStore.List()
	if err != nil {
		slog.Error("list events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// parseEventForm reads the multipart event form. The returned file header
// is nil when no image was attached.
func parseEventForm(r *http.Request) (*eventInput, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadSize + 1024); err != nil {
		return nil, nil, err
	}

	in := &eventInput{
		Date:        r.FormValue("date"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Icon:        models.EventIcon(r.FormValue("icon")),
	}
	if in.Icon == "" {
		in.Icon = models.EventIconMusic
	}
	if v := r.FormValue("display_order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return nil, nil, err
		}
		in.DisplayOrder = order
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return in, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	file.Close()

	return in, header, nil
}

// EventCreate validates the form, uploads the attached image if any, and
// inserts the event. An upload failure aborts the save — nothing is
// written. New events default to active with display_order 0.
func (a *Admin) EventCreate(w http.ResponseWriter, r *http.Request) {
	in, imageFile, err := parseEventForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if msg := validateEvent(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	event := &models.Event{
		Date:         in.Date,
		Title:        in.Title,
		Description:  in.Description,
		Icon:         in.Icon,
		IsActive:     true,
		DisplayOrder: in.DisplayOrder,
	}

	if imageFile != nil {
		url, err := uploadImage(r.Context(), a.storageClient, a.eventBucket(), imageFile)
		if err != nil {
			slog.Error("event image upload failed", "error", err)
			writeError(w, http.StatusBadGateway, "image upload failed")
			return
		}
		event.ImageURL = &url
	}

	created, err := a.eventStore.Create(event)
	if err != nil {
		slog.Error("create event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save event")
		return
	}

	a.invalidate(r, cache.EventsKey)
	writeJSON(w, http.StatusCreated, created)
}

// EventUpdate validates the form and updates the event in place. When a
// new image is attached it is uploaded first; an upload failure aborts
// the save and the prior image_url stays untouched.
func (a *Admin) EventUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := a.eventStore.FindByID(id)
	if err != nil {
		slog.Error("find event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	in, imageFile, err := parseEventForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if msg := validateEvent(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	event.Date = in.Date
	event.Title = in.Title
	event.Description = in.Description
	event.Icon = in.Icon
	event.DisplayOrder = in.DisplayOrder

	if imageFile != nil {
		url, err := uploadImage(r.Context(), a.storageClient, a.eventBucket(), imageFile)
		if err != nil {
			slog.Error("event image upload failed", "error", err)
			writeError(w, http.StatusBadGateway, "image upload failed")
			return
		}
		event.ImageURL = &url
	}

	if err := a.eventStore.Update(event); err != nil {
		slog.Error("update event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save event")
		return
	}

	a.invalidate(r, cache.EventsKey)
	writeJSON(w, http.StatusOK, event)
}

// EventToggle flips is_active. Activation is refused with 409 while four
// other events are already active; deactivation always succeeds.
func (a *Admin) EventToggle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := a.eventStore.FindByID(id)
	if err != nil {
		slog.Error("find event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	if event.IsActive {
		err = a.eventStore.Deactivate(id)
	} else {
		err = a.eventStore.Activate(id)
	}
	if errors.Is(err, store.ErrActiveLimit) {
		writeError(w, http.StatusConflict, "no more than 4 events can be active at once")
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		slog.Error("toggle event failed", "error", err, "event_id", id)
		writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	event.IsActive = !event.IsActive
	a.invalidate(r, cache.EventsKey)
	writeJSON(w, http.StatusOK, event)
}

// EventDelete removes the event row. Confirmation is the client's job;
// the uploaded image object stays in storage.
func (a *Admin) EventDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := a.eventStore.Delete(id); err != nil {
		slog.Error("delete event failed", "error", err, "event_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	a.invalidate(r, cache.EventsKey)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// eventBucket returns the bucket for event images, or "" without storage.
func (a *Admin) eventBucket() string {
	if a.storageClient == nil {
		return ""
	}
	return a.storageClient.EventBucket()
}

// menuBucket returns the bucket for menu images, or "" without storage.
func (a *Admin) menuBucket() string {
	if a.storageClient == nil {
		return ""
	}
	return a.storageClient.MenuBucket()
}
