package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a demo user
// and one sample project per template type. It is a no-op when any user
// already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "demo@adforge.local", string(hash), "Demo User").Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert demo user: %w", err)
	}

	for _, tt := range []string{"social", "banner", "story"} {
		_, err = db.Exec(`
			INSERT INTO ad_projects (user_id, title, template_type, content)
			VALUES ($1, $2, $3, '{}')
		`, userID, fmt.Sprintf("New %s Ad", tt), tt)
		if err != nil {
			return fmt.Errorf("seed insert %s project: %w", tt, err)
		}
	}

	slog.Info("database seeded with demo user",
		"email", "demo@adforge.local",
		"password", "demo",
	)

	return nil
}
