package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"bessonnitsa/internal/cache"
	"bessonnitsa/internal/store"
)

// Public groups the read-only handlers behind the public site. Responses
// are identical for every visitor, so the encoded body is cached in
// Valkey and dropped whenever an admin mutation touches the rows.
type Public struct {
	eventStore    *store.EventStore
	categoryStore *store.MenuCategoryStore
	imageStore    *store.MenuImageStore
	contentCache  *cache.ContentCache
}

// NewPublic creates a new Public handler group. contentCache may be nil.
func NewPublic(eventStore *store.EventStore, categoryStore *store.MenuCategoryStore, imageStore *store.MenuImageStore, contentCache *cache.ContentCache) *Public {
	return &Public{
		eventStore:    eventStore,
		categoryStore: categoryStore,
		imageStore:    imageStore,
		contentCache:  contentCache,
	}
}

// serveCached writes a cached body if present.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if p.contentCache == nil {
		return false
	}
	body, ok := p.contentCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	return true
}

// storeCached caches an encoded body and writes it out.
func (p *Public) storeCached(w http.ResponseWriter, r *http.Request, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode public response failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load content")
		return
	}
	if p.contentCache != nil {
		p.contentCache.Set(r.Context(), key, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Events returns the active events ordered for the public poster section.
func (p *Public) Events(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.EventsKey) {
		return
	}

	events, err := p.eventStore.ListActive()
	if err != nil {
		slog.Error("list active events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	p.storeCached(w, r, cache.EventsKey, map[string]any{"events": events})
}

// Menu returns all menu categories with their images, ordered for display.
func (p *Public) Menu(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.MenuKey) {
		return
	}

	categories, err := p.categoryStore.List()
	if err != nil {
		slog.Error("list menu categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}

	images, err := p.imageStore.List()
	if err != nil {
		slog.Error("list menu images failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}

	p.storeCached(w, r, cache.MenuKey, map[string]any{
		"categories": attachImages(categories, images),
	})
}
