package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for accounts and authentication.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error

	ListUsers(ctx context.Context, req ListUsersRequest) ([]UserDTO, int, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, req UpdateRoleRequest) error
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, req UpdateStatusRequest) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
