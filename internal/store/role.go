package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// RoleStore checks and manages role grants. It is the role-membership
// capability injected into the admin session guard, so the guard can be
// exercised in tests with a stub.
type RoleStore struct {
	db *sql.DB
}

// NewRoleStore returns a new RoleStore.
func NewRoleStore(db *sql.DB) *RoleStore {
	return &RoleStore{db: db}
}

// HasRole reports whether a grant row exists for the user and role.
func (s *RoleStore) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)
	`, userID, role).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

// Grant adds a role to a user. Granting an existing role is a no-op.
func (s *RoleStore) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`, userID, role)
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

// Revoke removes a role grant from a user.
func (s *RoleStore) Revoke(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM user_roles WHERE user_id = $1 AND role = $2
	`, userID, role)
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}
