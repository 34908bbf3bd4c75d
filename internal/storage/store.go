package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/meshforge/meshlink-server/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// Store defines the storage interface
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int64, error)

	// Channel profile methods
	CreateChannelProfile(ctx context.Context, profile *models.ChannelProfile) error
	GetChannelProfile(ctx context.Context, id uuid.UUID) (*models.ChannelProfile, error)
	UpdateChannelProfile(ctx context.Context, profile *models.ChannelProfile) error
	DeleteChannelProfile(ctx context.Context, id uuid.UUID) error
	ListChannelProfiles(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.ChannelProfile, int64, error)
}
