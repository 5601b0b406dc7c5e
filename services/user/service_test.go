package user

import (
	"testing"
	"time"

	"taskhub/auth"
	userRepo "taskhub/database/repository/user"
	"taskhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	nextID int64
	items  map[int64]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{items: map[int64]*models.User{}}
}

func (m *memUserRepo) Create(u *models.User) error {
	m.nextID++
	u.ID = m.nextID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	copied := *u
	m.items[u.ID] = &copied
	return nil
}

func (m *memUserRepo) GetByID(id int64) (*models.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range m.items {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (m *memUserRepo) Update(u *models.User) error {
	if _, ok := m.items[u.ID]; !ok {
		return userRepo.ErrNotFound
	}
	copied := *u
	m.items[u.ID] = &copied
	return nil
}

func (m *memUserRepo) ListActive() ([]models.User, error) {
	var out []models.User
	for _, u := range m.items {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func newTestUserService() *DefaultUserService {
	return &DefaultUserService{
		Repo:  newMemUserRepo(),
		Codec: auth.NewTokenCodec("test-secret", time.Hour),
	}
}

func registration() models.UserRegistration {
	return models.UserRegistration{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
		FirstName:       "Alice",
	}
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc := newTestUserService()

	resp, err := svc.Register(registration())
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.True(t, resp.User.IsActive)
	assert.NotEqual(t, "correct-horse", resp.User.PasswordHash)

	claims, err := svc.Codec.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc := newTestUserService()

	reg := registration()
	reg.PasswordConfirm = "something-else"
	_, err := svc.Register(reg)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestUserService()
	_, err := svc.Register(registration())
	require.NoError(t, err)

	dupUsername := registration()
	dupUsername.Email = "other@example.com"
	_, err = svc.Register(dupUsername)
	assert.ErrorIs(t, err, ErrUserExists)

	dupEmail := registration()
	dupEmail.Username = "someone-else"
	_, err = svc.Register(dupEmail)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestUserService()
	_, err := svc.Register(registration())
	require.NoError(t, err)

	resp, err := svc.Authenticate("alice", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames fail the same way as bad passwords.
	_, err = svc.Authenticate("nobody", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileAppliesPartialChanges(t *testing.T) {
	svc := newTestUserService()
	resp, err := svc.Register(registration())
	require.NoError(t, err)

	position := "team lead"
	updated, err := svc.UpdateProfile(resp.User.ID, models.UserUpdate{Position: &position})
	require.NoError(t, err)
	assert.Equal(t, "team lead", updated.Position)
	// Untouched fields survive.
	assert.Equal(t, "Alice", updated.FirstName)
}
