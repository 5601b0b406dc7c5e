package user

import (
	"errors"
	"fmt"

	"taskhub/auth"
	userRepo "taskhub/database/repository/user"
	"taskhub/models"
	"taskhub/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Business-level failures surfaced to handlers.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// Register validates the registration payload, stores the account and
// issues a token so the client is signed in immediately.
func (s *DefaultUserService) Register(reg models.UserRegistration) (*AuthResponse, error) {
	if reg.Password != reg.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.Repo.GetByUsername(reg.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetByEmail(reg.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Patronymic:   reg.Patronymic,
		Position:     reg.Position,
		Department:   reg.Department,
		Phone:        reg.Phone,
		IsActive:     true,
	}
	if err := s.Repo.Create(usr); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.issueToken(usr)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: usr, Token: token}, nil
}

// Authenticate verifies credentials and issues a token. Lookup and password
// failures collapse into one error so callers cannot probe for usernames.
func (s *DefaultUserService) Authenticate(username, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if !usr.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(usr)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: usr, Token: token}, nil
}

func (s *DefaultUserService) issueToken(usr *models.User) (string, error) {
	token, err := s.Codec.Issue(auth.Principal{ID: usr.ID, Name: usr.Username, Authenticated: true})
	if err != nil {
		utils.GetLogger().Error("failed to issue token", zap.Int64("userID", usr.ID), zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}
	return token, nil
}

// GetProfile retrieves a user by id.
func (s *DefaultUserService) GetProfile(userID int64) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// UpdateProfile applies the non-nil fields of upd to the stored account.
func (s *DefaultUserService) UpdateProfile(userID int64, upd models.UserUpdate) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil {
		usr.Email = *upd.Email
	}
	if upd.FirstName != nil {
		usr.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		usr.LastName = *upd.LastName
	}
	if upd.Patronymic != nil {
		usr.Patronymic = *upd.Patronymic
	}
	if upd.Position != nil {
		usr.Position = *upd.Position
	}
	if upd.Department != nil {
		usr.Department = *upd.Department
	}
	if upd.Phone != nil {
		usr.Phone = *upd.Phone
	}

	if err := s.Repo.Update(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// ListUsers returns all active users.
func (s *DefaultUserService) ListUsers() ([]models.User, error) {
	return s.Repo.ListActive()
}
