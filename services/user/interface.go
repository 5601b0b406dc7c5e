package user

import (
	"taskhub/auth"
	userRepo "taskhub/database/repository/user"
	"taskhub/models"
)

// UserService defines business logic for the auth service.
type UserService interface {
	// Register validates registration details, creates the account and
	// returns it with a freshly issued token.
	Register(reg models.UserRegistration) (*AuthResponse, error)
	// Authenticate verifies username/password and issues a token.
	Authenticate(username, password string) (*AuthResponse, error)
	// GetProfile retrieves a user by id.
	GetProfile(userID int64) (*models.User, error)
	// UpdateProfile applies a partial profile update.
	UpdateProfile(userID int64, upd models.UserUpdate) (*models.User, error)
	// ListUsers returns all active users.
	ListUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Codec *auth.TokenCodec
}

// AuthResponse pairs an account with its issued credential.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
