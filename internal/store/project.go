// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"adforge/internal/models"
)

// ProjectStore handles all ad-project database operations. Every read and
// write is scoped to the owning user: a project is never visible to, or
// mutable by, anyone but its owner.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// ListByOwner returns all projects belonging to the owner, most recently
// updated first.
func (s *ProjectStore) ListByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, template_type, content, thumbnail_url, created_at, updated_at
		FROM ad_projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// FindByIDForOwner retrieves a project by ID, scoped to the owner.
// Returns nil both when the project does not exist and when it belongs
// to a different user.
func (s *ProjectStore) FindByIDForOwner(id, ownerID uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, template_type, content, thumbnail_url, created_at, updated_at
		FROM ad_projects
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project for the owner with the template-derived
// default title and an empty content bag.
func (s *ProjectStore) Create(ownerID uuid.UUID, templateType models.TemplateType) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO ad_projects (user_id, title, template_type, content)
		VALUES ($1, $2, $3, '{}')
		RETURNING id, user_id, title, template_type, content, thumbnail_url, created_at, updated_at
	`, ownerID, models.DefaultTitle(templateType), templateType)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// UpdateContent replaces the project's title and full content bag in a
// single statement and refreshes the update timestamp. The write is
// all-or-nothing: either every field lands or the row is untouched.
// Returns ErrNotFound when no row matches the id/owner pair.
func (s *ProjectStore) UpdateContent(id, ownerID uuid.UUID, title string, content models.Content) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE ad_projects SET
			title = $1, content = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, title, raw, id, ownerID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project by ID, scoped to the owner. There is no user
// delete flow; this exists for seeding and test cleanup.
func (s *ProjectStore) Delete(id, ownerID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM ad_projects WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject reads one project row, unmarshalling the JSONB content bag.
func scanProject(row rowScanner) (*models.Project, error) {
	p := &models.Project{}
	var raw []byte
	if err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.TemplateType, &raw,
		&p.ThumbnailURL, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Content); err != nil {
			return nil, fmt.Errorf("unmarshal project content: %w", err)
		}
	}
	return p, nil
}
