package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	repo         user.Repository
	tokens       *jwt.Manager
	accessExpiry time.Duration
}

// NewUserService wires the account service.
func NewUserService(repo user.Repository, tokens *jwt.Manager, accessExpiryMinutes int) user.Service {
	return &userService{
		repo:         repo,
		tokens:       tokens,
		accessExpiry: time.Duration(accessExpiryMinutes) * time.Minute,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates an account. Self-registration is limited to the
// teacher and student roles; admins are promoted by another admin.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Role:         req.Role,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Never reveal whether the email exists.
		return nil, user.ErrInvalidCredentials
	}

	switch u.Status {
	case user.StatusInactive:
		return nil, user.ErrUserInactive
	case user.StatusSuspended:
		return nil, user.ErrUserSuspended
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget, login must not fail on a bookkeeping write.
	go func() {
		_ = s.repo.UpdateLastLogin(context.Background(), u.ID)
	}()

	return resp, nil
}

func (s *userService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if u.Status != user.StatusActive {
		return nil, user.ErrUserInactive
	}

	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		User:         u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, userID, req.FullName); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.NewPassword)); err == nil {
		return user.ErrSamePassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(passwordHash))
}

// ========================================
// ADMIN
// ========================================

func (s *userService) ListUsers(ctx context.Context, req user.ListUsersRequest) ([]user.UserDTO, int, error) {
	req.SetDefaults()

	users, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]user.UserDTO, len(users))
	for i, u := range users {
		dtos[i] = u.ToDTO()
	}

	return dtos, total, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, userID uuid.UUID, req user.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateRole(ctx, userID, req.Role)
}

func (s *userService) UpdateUserStatus(ctx context.Context, userID uuid.UUID, req user.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateStatus(ctx, userID, req.Status)
}

func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}
