// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"adforge/internal/models"
)

// MediaStore tracks uploaded images whose bytes live in object storage.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Create inserts a media record and returns it with generated fields.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	result := &models.Media{}
	err := s.db.QueryRow(`
		INSERT INTO media (filename, original_name, content_type, size_bytes,
		                   bucket, s3_key, thumb_s3_key, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, filename, original_name, content_type, size_bytes,
		          bucket, s3_key, thumb_s3_key, uploader_id, created_at
	`, m.Filename, m.OriginalName, m.ContentType, m.SizeBytes,
		m.Bucket, m.S3Key, m.ThumbS3Key, m.UploaderID,
	).Scan(
		&result.ID, &result.Filename, &result.OriginalName, &result.ContentType,
		&result.SizeBytes, &result.Bucket, &result.S3Key, &result.ThumbS3Key,
		&result.UploaderID, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return result, nil
}

// FindByID retrieves a media record by its UUID. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	m := &models.Media{}
	err := s.db.QueryRow(`
		SELECT id, filename, original_name, content_type, size_bytes,
		       bucket, s3_key, thumb_s3_key, uploader_id, created_at
		FROM media WHERE id = $1
	`, id).Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.ContentType, &m.SizeBytes,
		&m.Bucket, &m.S3Key, &m.ThumbS3Key, &m.UploaderID, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Delete removes a media record by ID.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
