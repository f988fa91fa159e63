package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"bessonnitsa/internal/models"
)

func TestEventCRUD(t *testing.T) {
	db := testDB(t)
	s := NewEventStore(db)

	const title = "test-event-crud"
	t.Cleanup(func() { cleanEvents(t, db, title) })

	created, err := s.Create(&models.Event{
		Date:        "20 и 26 ноября",
		Title:       title,
		Description: "integration test event",
		Icon:        models.EventIconMusic,
		IsActive:    false,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created event has no ID")
	}
	if created.Icon != models.EventIconMusic {
		t.Errorf("icon: got %q", created.Icon)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Title != title {
		t.Fatalf("FindByID: got %+v", found)
	}

	found.Description = "updated description"
	found.Icon = models.EventIconSparkles
	if err := s.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if again.Description != "updated description" || again.Icon != models.EventIconSparkles {
		t.Errorf("update not persisted: %+v", again)
	}
	if again.IsActive {
		t.Error("Update must not touch is_active")
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("event still present after delete: %+v", gone)
	}
}

func TestEventFindByIDMissing(t *testing.T) {
	db := testDB(t)
	s := NewEventStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing event, got %+v", found)
	}
}

func TestEventActivationLimit(t *testing.T) {
	db := testDB(t)
	s := NewEventStore(db)

	// Park whatever is currently active so the limit counts only ours.
	var parked []uuid.UUID
	rows, err := db.Query(`SELECT id FROM events WHERE is_active`)
	if err != nil {
		t.Fatalf("query active events: %v", err)
	}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scan: %v", err)
		}
		parked = append(parked, id)
	}
	rows.Close()
	if _, err := db.Exec(`UPDATE events SET is_active = FALSE`); err != nil {
		t.Fatalf("deactivate existing events: %v", err)
	}
	t.Cleanup(func() {
		for _, id := range parked {
			db.Exec(`UPDATE events SET is_active = TRUE WHERE id = $1`, id)
		}
	})

	titles := make([]string, 0, models.MaxActiveEvents+1)
	ids := make([]uuid.UUID, 0, models.MaxActiveEvents+1)
	for i := 0; i <= models.MaxActiveEvents; i++ {
		title := fmt.Sprintf("test-event-limit-%d", i)
		titles = append(titles, title)
		e, err := s.Create(&models.Event{
			Date:        "дата",
			Title:       title,
			Description: "limit test",
			Icon:        models.EventIconCalendar,
			IsActive:    false,
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, e.ID)
	}
	t.Cleanup(func() { cleanEvents(t, db, titles...) })

	// The first four activations succeed.
	for i := 0; i < models.MaxActiveEvents; i++ {
		if err := s.Activate(ids[i]); err != nil {
			t.Fatalf("Activate %d: %v", i, err)
		}
	}

	count, err := s.CountActive()
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if count != models.MaxActiveEvents {
		t.Fatalf("active count: got %d, want %d", count, models.MaxActiveEvents)
	}

	// The fifth is refused and the count holds.
	if err := s.Activate(ids[models.MaxActiveEvents]); !errors.Is(err, ErrActiveLimit) {
		t.Fatalf("Activate over limit: got %v, want ErrActiveLimit", err)
	}
	count, _ = s.CountActive()
	if count != models.MaxActiveEvents {
		t.Errorf("active count after refusal: got %d, want %d", count, models.MaxActiveEvents)
	}

	// Re-activating an already active event stays within the limit.
	if err := s.Activate(ids[0]); err != nil {
		t.Errorf("Activate already-active: %v", err)
	}

	// Deactivation always goes through and frees a slot.
	if err := s.Deactivate(ids[0]); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if err := s.Activate(ids[models.MaxActiveEvents]); err != nil {
		t.Errorf("Activate into freed slot: %v", err)
	}
}

func TestEventActivateMissing(t *testing.T) {
	db := testDB(t)
	s := NewEventStore(db)

	err := s.Activate(uuid.New())
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Activate missing event: got %v, want sql.ErrNoRows", err)
	}
}
