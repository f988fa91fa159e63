package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bessonnitsa/internal/models"
)

// MenuImageStore manages menu page images in the database.
// The files themselves live in object storage; only URLs are stored here.
type MenuImageStore struct {
	db *sql.DB
}

// NewMenuImageStore returns a new MenuImageStore.
func NewMenuImageStore(db *sql.DB) *MenuImageStore {
	return &MenuImageStore{db: db}
}

const menuImageColumns = `id, category_id, image_url, display_order, created_at`

// scanMenuImage scans a row into a MenuImage struct.
func scanMenuImage(scanner interface{ Scan(...any) error }) (*models.MenuImage, error) {
	var m models.MenuImage
	err := scanner.Scan(&m.ID, &m.CategoryID, &m.ImageURL, &m.DisplayOrder, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all menu images ordered by display_order. Association to
// categories happens in the handler by matching category_id.
func (s *MenuImageStore) List() ([]models.MenuImage, error) {
	rows, err := s.db.Query(`
		SELECT ` + menuImageColumns + `
		FROM menu_images
		ORDER BY display_order, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu images: %w", err)
	}
	defer rows.Close()

	var items []models.MenuImage
	for rows.Next() {
		m, err := scanMenuImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu image: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// ListByCategory returns the images belonging to one category.
func (s *MenuImageStore) ListByCategory(categoryID uuid.UUID) ([]models.MenuImage, error) {
	rows, err := s.db.Query(`
		SELECT `+menuImageColumns+`
		FROM menu_images
		WHERE category_id = $1
		ORDER BY display_order, created_at
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list menu images by category: %w", err)
	}
	defer rows.Close()

	var items []models.MenuImage
	for rows.Next() {
		m, err := scanMenuImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu image: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Create inserts a new menu image row and returns it.
func (s *MenuImageStore) Create(m *models.MenuImage) (*models.MenuImage, error) {
	row := s.db.QueryRow(`
		INSERT INTO menu_images (category_id, image_url, display_order)
		VALUES ($1, $2, $3)
		RETURNING `+menuImageColumns,
		m.CategoryID, m.ImageURL, m.DisplayOrder,
	)
	result, err := scanMenuImage(row)
	if err != nil {
		return nil, fmt.Errorf("create menu image: %w", err)
	}
	return result, nil
}

// Delete removes a menu image row by ID. The storage object is not touched.
func (s *MenuImageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM menu_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu image: %w", err)
	}
	return nil
}
