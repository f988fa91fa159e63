// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxActiveEvents is the most events that may be active (visible on the
// public poster section) at any one time. The limit exists for display
// space, not data integrity, and is enforced at activation.
const MaxActiveEvents = 4

// EventIcon selects the display glyph for an event on the public site.
type EventIcon string

const (
	EventIconMusic    EventIcon = "Music"
	EventIconSparkles EventIcon = "Sparkles"
	EventIconCalendar EventIcon = "Calendar"
)

// Valid reports whether the icon is one of the known event glyphs.
// Unknown values are rejected at write time rather than falling back.
func (i EventIcon) Valid() bool {
	switch i {
	case EventIconMusic, EventIconSparkles, EventIconCalendar:
		return true
	}
	return false
}

// Event represents a poster entry on the public events section.
// Date is a free-text label ("20 и 26 ноября"), not a parsed calendar date.
type Event struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Icon         EventIcon `json:"icon"`
	ImageURL     *string   `json:"image_url"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
