package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuIcon selects the display glyph for a menu category.
type MenuIcon string

const (
	MenuIconUtensils MenuIcon = "Utensils"
	MenuIconWine     MenuIcon = "Wine"
	MenuIconCoffee   MenuIcon = "Coffee"
)

// Valid reports whether the icon is one of the known menu glyphs.
func (i MenuIcon) Valid() bool {
	switch i {
	case MenuIconUtensils, MenuIconWine, MenuIconCoffee:
		return true
	}
	return false
}

// MenuCategory represents one section of the restaurant menu
// ("Основное меню", "Винная карта"). It owns zero or more MenuImage
// records, scanned pages of the printed menu.
type MenuCategory struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Icon         MenuIcon  `json:"icon"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Images is populated by handlers that join images to categories.
	Images []MenuImage `json:"images,omitempty"`
}

// MenuImage is one uploaded menu page image belonging to a category.
// Deleting a category cascades to its image rows in the database; the
// underlying storage objects are left in place.
type MenuImage struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   uuid.UUID `json:"category_id"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
