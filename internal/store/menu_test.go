package store

import (
	"testing"

	"github.com/google/uuid"

	"bessonnitsa/internal/models"
)

func TestMenuCategoryCRUD(t *testing.T) {
	db := testDB(t)
	s := NewMenuCategoryStore(db)

	const title = "test-menu-category-crud"
	t.Cleanup(func() { cleanCategories(t, db, title) })

	created, err := s.Create(&models.MenuCategory{
		Title:        title,
		Icon:         models.MenuIconWine,
		Description:  "integration test category",
		DisplayOrder: 7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created category has no ID")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Icon != models.MenuIconWine || found.DisplayOrder != 7 {
		t.Fatalf("FindByID: got %+v", found)
	}

	found.Icon = models.MenuIconCoffee
	found.Description = "updated"
	if err := s.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := s.FindByID(created.ID)
	if again.Icon != models.MenuIconCoffee || again.Description != "updated" {
		t.Errorf("update not persisted: %+v", again)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("category still present after delete: %+v", gone)
	}
}

func TestMenuImagesCascadeOnCategoryDelete(t *testing.T) {
	db := testDB(t)
	categories := NewMenuCategoryStore(db)
	images := NewMenuImageStore(db)

	const title = "test-menu-cascade"
	t.Cleanup(func() { cleanCategories(t, db, title) })

	category, err := categories.Create(&models.MenuCategory{
		Title:       title,
		Icon:        models.MenuIconUtensils,
		Description: "cascade test",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := images.Create(&models.MenuImage{
			CategoryID:   category.ID,
			ImageURL:     "https://s3.example.com/menu/test-cascade.jpg",
			DisplayOrder: i,
		})
		if err != nil {
			t.Fatalf("create image %d: %v", i, err)
		}
	}

	got, err := images.ListByCategory(category.ID)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("images before delete: got %d, want 3", len(got))
	}

	if err := categories.Delete(category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	// The image rows go with the category.
	got, err = images.ListByCategory(category.ID)
	if err != nil {
		t.Fatalf("ListByCategory after delete: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("images after delete: got %d, want 0", len(got))
	}
}

func TestMenuImageDelete(t *testing.T) {
	db := testDB(t)
	categories := NewMenuCategoryStore(db)
	images := NewMenuImageStore(db)

	const title = "test-menu-image-delete"
	t.Cleanup(func() { cleanCategories(t, db, title) })

	category, err := categories.Create(&models.MenuCategory{
		Title:       title,
		Icon:        models.MenuIconUtensils,
		Description: "image delete test",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	img, err := images.Create(&models.MenuImage{
		CategoryID: category.ID,
		ImageURL:   "https://s3.example.com/menu/page.jpg",
	})
	if err != nil {
		t.Fatalf("create image: %v", err)
	}

	if err := images.Delete(img.ID); err != nil {
		t.Fatalf("delete image: %v", err)
	}

	left, err := images.ListByCategory(category.ID)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("images left: got %d, want 0", len(left))
	}
}
