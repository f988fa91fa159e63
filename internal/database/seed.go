package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: an admin
// account with an admin role grant, plus a couple of menu categories and
// events so the public site is not empty. It is a no-op if users exist.
func Seed(db *sql.DB, adminLogin, adminPassword string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Bare logins are stored the same way the login form normalizes them.
	email := adminLogin
	if !strings.Contains(email, "@") {
		email = strings.ToLower(email) + "@admin.local"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, string(hash), "Администратор").Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
	`, adminID); err != nil {
		return fmt.Errorf("seed grant admin role: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO menu_categories (title, icon, description, display_order) VALUES
		('Основное меню', 'Utensils', 'Кухня ресторана', 0),
		('Винная карта', 'Wine', 'Вина и напитки', 1)
	`); err != nil {
		return fmt.Errorf("seed menu categories: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO events (date, title, description, icon, is_active, display_order) VALUES
		('Каждую пятницу', 'Живая музыка', 'Джазовый вечер в зале', 'Music', TRUE, 0),
		('По выходным', 'Дегустация вин', 'Сет от сомелье', 'Sparkles', TRUE, 1)
	`); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", email,
	)

	return nil
}
