// Package store provides database access methods for all application
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bessonnitsa/internal/models"
)

// ErrActiveLimit is returned by Activate when the event cannot be
// activated without exceeding models.MaxActiveEvents.
var ErrActiveLimit = errors.New("maximum number of active events reached")

// EventStore handles all event-related database operations.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore with the given database connection.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventColumns = `id, date, title, description, icon, image_url, is_active, display_order, created_at, updated_at`

// scanEvent scans a row into an Event struct.
func scanEvent(scanner interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := scanner.Scan(
		&e.ID, &e.Date, &e.Title, &e.Description, &e.Icon,
		&e.ImageURL, &e.IsActive, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events ordered by display_order. The admin console
// sees active and inactive records alike.
func (s *EventStore) List() ([]models.Event, error) {
	return s.list(`SELECT ` + eventColumns + ` FROM events ORDER BY display_order, created_at`)
}

// ListActive returns only active events ordered by display_order,
// as shown on the public poster section.
func (s *EventStore) ListActive() ([]models.Event, error) {
	return s.list(`SELECT ` + eventColumns + ` FROM events WHERE is_active ORDER BY display_order, created_at`)
}

func (s *EventStore) list(query string) ([]models.Event, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// FindByID retrieves an event by ID. Returns nil if not found.
func (s *EventStore) FindByID(id uuid.UUID) (*models.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return e, nil
}

// Create inserts a new event and returns it.
func (s *EventStore) Create(e *models.Event) (*models.Event, error) {
	row := s.db.QueryRow(`
		INSERT INTO events (date, title, description, icon, image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+eventColumns,
		e.Date, e.Title, e.Description, e.Icon, e.ImageURL, e.IsActive, e.DisplayOrder,
	)
	result, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return result, nil
}

// Update modifies an existing event in place. The activation flag is not
// touched here — use Activate/Deactivate so the limit stays enforced.
func (s *EventStore) Update(e *models.Event) error {
	_, err := s.db.Exec(`
		UPDATE events SET
			date = $1, title = $2, description = $3, icon = $4,
			image_url = $5, display_order = $6, updated_at = NOW()
		WHERE id = $7
	`, e.Date, e.Title, e.Description, e.Icon, e.ImageURL, e.DisplayOrder, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Activate flips an event to active, but only while fewer than
// models.MaxActiveEvents other events are active. The check and the write
// are a single conditional UPDATE so two racing activations cannot push
// the count past the limit. Returns ErrActiveLimit when the event exists
// but the limit is already reached.
func (s *EventStore) Activate(id uuid.UUID) error {
	res, err := s.db.Exec(`
		UPDATE events SET is_active = TRUE, updated_at = NOW()
		WHERE id = $1
		AND (SELECT COUNT(*) FROM events WHERE is_active AND id <> $1) < $2
	`, id, models.MaxActiveEvents)
	if err != nil {
		return fmt.Errorf("activate event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate event rows: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// No row updated: either the event is gone or the limit blocked it.
	var exists bool
	if err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("activate event check: %w", err)
	}
	if !exists {
		return sql.ErrNoRows
	}
	return ErrActiveLimit
}

// Deactivate flips an event to inactive. Always permitted.
func (s *EventStore) Deactivate(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE events SET is_active = FALSE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate event: %w", err)
	}
	return nil
}

// CountActive returns the number of currently active events.
func (s *EventStore) CountActive() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM events WHERE is_active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active events: %w", err)
	}
	return count, nil
}

// Delete removes an event by ID. Any uploaded image object stays in
// storage — only the row goes.
func (s *EventStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
