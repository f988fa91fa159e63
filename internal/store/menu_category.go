package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bessonnitsa/internal/models"
)

// MenuCategoryStore manages menu categories in the database.
type MenuCategoryStore struct {
	db *sql.DB
}

// NewMenuCategoryStore returns a new MenuCategoryStore.
func NewMenuCategoryStore(db *sql.DB) *MenuCategoryStore {
	return &MenuCategoryStore{db: db}
}

const menuCategoryColumns = `id, title, icon, description, display_order, created_at, updated_at`

// scanMenuCategory scans a row into a MenuCategory struct.
func scanMenuCategory(scanner interface{ Scan(...any) error }) (*models.MenuCategory, error) {
	var c models.MenuCategory
	err := scanner.Scan(
		&c.ID, &c.Title, &c.Icon, &c.Description,
		&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by display_order.
func (s *MenuCategoryStore) List() ([]models.MenuCategory, error) {
	rows, err := s.db.Query(`
		SELECT ` + menuCategoryColumns + `
		FROM menu_categories
		ORDER BY display_order, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu categories: %w", err)
	}
	defer rows.Close()

	var items []models.MenuCategory
	for rows.Next() {
		c, err := scanMenuCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *MenuCategoryStore) FindByID(id uuid.UUID) (*models.MenuCategory, error) {
	row := s.db.QueryRow(`SELECT `+menuCategoryColumns+` FROM menu_categories WHERE id = $1`, id)
	c, err := scanMenuCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *MenuCategoryStore) Create(c *models.MenuCategory) (*models.MenuCategory, error) {
	row := s.db.QueryRow(`
		INSERT INTO menu_categories (title, icon, description, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+menuCategoryColumns,
		c.Title, c.Icon, c.Description, c.DisplayOrder,
	)
	result, err := scanMenuCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create menu category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *MenuCategoryStore) Update(c *models.MenuCategory) error {
	_, err := s.db.Exec(`
		UPDATE menu_categories SET
			title = $1, icon = $2, description = $3, display_order = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Title, c.Icon, c.Description, c.DisplayOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update menu category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Its image rows go with it
// (ON DELETE CASCADE); the storage objects are left in place.
func (s *MenuCategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM menu_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu category: %w", err)
	}
	return nil
}
