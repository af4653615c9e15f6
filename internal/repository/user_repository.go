package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
)

// UserRepository provides data access methods for the user table, including
// the semi-structured profile and patterns blobs stored on the user row.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user row with the given initial profile.
// The goals and patterns blobs start empty.
func (s *UserRepository) CreateUser(user model.User, profile model.Profile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
          INSERT INTO user (id, email, profile, goals, patterns, created_at)
          VALUES (?, ?, ?, '{}', '{}', ?)
      `
	_, err = s.db.Exec(query, user.ID, user.Email, string(profileJSON), time.Now().UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUser retrieves a user row by ID.
func (s *UserRepository) GetUser(userID string) (model.User, error) {
	query := `SELECT id, email, created_at FROM user WHERE id = ?`

	var u model.User
	err := s.db.QueryRow(query, userID).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// GetProfile retrieves and decodes the user's profile blob. An empty or
// malformed blob decodes to the zero Profile rather than failing the read;
// only a missing user or store error propagates.
func (s *UserRepository) GetProfile(userID string) (model.Profile, error) {
	query := `SELECT profile FROM user WHERE id = ?`

	var raw string
	err := s.db.QueryRow(query, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.Profile{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	var profile model.Profile
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &profile)
	}

	return profile, nil
}

// SaveProfile encodes and stores the user's profile blob, replacing the
// previous value. Last writer wins.
func (s *UserRepository) SaveProfile(userID string, profile model.Profile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	result, err := s.db.Exec(`UPDATE user SET profile = ? WHERE id = ?`, string(profileJSON), userID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check profile update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetPatterns retrieves and decodes the user's spending-patterns blob.
func (s *UserRepository) GetPatterns(userID string) (model.SpendingPatterns, error) {
	query := `SELECT patterns FROM user WHERE id = ?`

	var raw string
	err := s.db.QueryRow(query, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.SpendingPatterns{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.SpendingPatterns{}, fmt.Errorf("failed to query patterns: %w", err)
	}

	var patterns model.SpendingPatterns
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &patterns)
	}

	return patterns, nil
}

// SavePatterns encodes and stores the user's spending-patterns blob.
func (s *UserRepository) SavePatterns(userID string, patterns model.SpendingPatterns) error {
	patternsJSON, err := json.Marshal(patterns)
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}

	result, err := s.db.Exec(`UPDATE user SET patterns = ? WHERE id = ?`, string(patternsJSON), userID)
	if err != nil {
		return fmt.Errorf("failed to update patterns: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check patterns update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ListUserIDs returns the IDs of all users. Used by the nightly
// pattern-refresh job.
func (s *UserRepository) ListUserIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM user`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return ids, nil
}
