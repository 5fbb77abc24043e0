package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/pkg/jwt"
)

type mockUserRepo struct {
	users map[string]*user.User

	created        *user.User
	updatedRole    *user.Role
	updatedHash    string
	lastLoginCalls int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*user.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	m.created = u
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockUserRepo) List(ctx context.Context, req user.ListUsersRequest) ([]user.User, int, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fullName string) error {
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	m.updatedHash = passwordHash
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	m.updatedRole = &role
	return nil
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) error {
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	m.lastLoginCalls++
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) {
	return 0, nil
}

func newTestUserService(repo user.Repository) user.Service {
	return NewUserService(repo, jwt.NewManager("test-secret", 15, 168), 15)
}

func seedUser(repo *mockUserRepo, email, password string, status user.Status) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         user.RoleStudent,
		Status:       status,
	}
	repo.users[email] = u
	return u
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "admin@example.com",
		Password: "password123",
		FullName: "Wannabe Admin",
		Role:     user.RoleAdmin,
	})

	assert.Error(t, err, "self-registration must not grant admin")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "taken@example.com", "password123", user.StatusActive)
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		FullName: "Second Comer",
		Role:     user.RoleStudent,
	})

	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New Student",
		Role:     user.RoleStudent,
	})

	require.NoError(t, err)
	assert.Equal(t, user.StatusActive, dto.Status)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "password123", repo.created.PasswordHash)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "a@example.com", "password123", user.StatusActive)
	svc := newTestUserService(repo)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "a@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginBlocksNonActiveAccounts(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "inactive@example.com", "password123", user.StatusInactive)
	seedUser(repo, "suspended@example.com", "password123", user.StatusSuspended)
	svc := newTestUserService(repo)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "inactive@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, user.ErrUserInactive)

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email:    "suspended@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, user.ErrUserSuspended)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "ok@example.com", "password123", user.StatusActive)
	svc := newTestUserService(repo)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ok@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ok@example.com", resp.User.Email)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.Refresh(context.Background(), user.RefreshRequest{
		RefreshToken: "not-a-jwt",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestChangePasswordRejectsSamePassword(t *testing.T) {
	repo := newMockUserRepo()
	u := seedUser(repo, "c@example.com", "password123", user.StatusActive)
	svc := newTestUserService(repo)

	err := svc.ChangePassword(context.Background(), u.ID, user.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password123",
	})

	assert.ErrorIs(t, err, user.ErrSamePassword)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newMockUserRepo()
	u := seedUser(repo, "c@example.com", "password123", user.StatusActive)
	svc := newTestUserService(repo)

	err := svc.ChangePassword(context.Background(), u.ID, user.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-pass",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Empty(t, repo.updatedHash)
}
