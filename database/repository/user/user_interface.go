package userRepo

import (
	"errors"

	"taskhub/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines the persistence operations for user accounts.
// Only the auth service owns a user store; the other services never look
// users up.
type UserRepository interface {
	// Create inserts a new user, assigning a sequence id.
	Create(user *models.User) error
	// GetByID retrieves a user by its id.
	GetByID(id int64) (*models.User, error)
	// GetByUsername retrieves a user by username.
	GetByUsername(username string) (*models.User, error)
	// GetByEmail retrieves a user by email.
	GetByEmail(email string) (*models.User, error)
	// Update persists changed profile fields.
	Update(user *models.User) error
	// ListActive returns all active users, most recent first.
	ListActive() ([]models.User, error)
}
