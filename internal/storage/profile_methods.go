package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meshforge/meshlink-server/internal/models"
)

// CreateChannelProfile creates a new channel profile
func (s *PostgresStore) CreateChannelProfile(ctx context.Context, profile *models.ChannelProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO channel_profiles (
			id, created_at, updated_at, owner_id, name, description, config, url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		profile.ID, profile.CreatedAt, profile.UpdatedAt, profile.OwnerID,
		profile.Name, profile.Description, profile.Config, profile.URL,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetChannelProfile gets a channel profile by ID
func (s *PostgresStore) GetChannelProfile(ctx context.Context, id uuid.UUID) (*models.ChannelProfile, error) {
	query := `
		SELECT id, created_at, updated_at, owner_id, name, description, config, url
		FROM channel_profiles
		WHERE id = $1`

	profile := &models.ChannelProfile{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.CreatedAt, &profile.UpdatedAt, &profile.OwnerID,
		&profile.Name, &profile.Description, &profile.Config, &profile.URL,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return profile, err
}

// UpdateChannelProfile updates a channel profile
func (s *PostgresStore) UpdateChannelProfile(ctx context.Context, profile *models.ChannelProfile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE channel_profiles SET
			updated_at = $2, name = $3, description = $4, config = $5, url = $6
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		profile.ID, profile.UpdatedAt, profile.Name, profile.Description,
		profile.Config, profile.URL,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteChannelProfile deletes a channel profile
func (s *PostgresStore) DeleteChannelProfile(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM channel_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListChannelProfiles lists channel profiles, optionally scoped to an owner
func (s *PostgresStore) ListChannelProfiles(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.ChannelProfile, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM channel_profiles WHERE ($1::uuid IS NULL OR owner_id = $1)`
	if err := s.getDB().QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, owner_id, name, description, config, url
		FROM channel_profiles
		WHERE ($1::uuid IS NULL OR owner_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.getDB().QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []*models.ChannelProfile
	for rows.Next() {
		profile := &models.ChannelProfile{}
		if err := rows.Scan(
			&profile.ID, &profile.CreatedAt, &profile.UpdatedAt, &profile.OwnerID,
			&profile.Name, &profile.Description, &profile.Config, &profile.URL,
		); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, rows.Err()
}
