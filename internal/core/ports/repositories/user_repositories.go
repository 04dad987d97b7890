package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a non-deleted user by login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUsers retrieves all non-deleted users ordered by username.
	FindUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details, role and entities.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID, passwordHash string, updatedAt time.Time, updatedBy string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}

// RoleReader defines read operations for roles
type RoleReader interface {
	FindRoleByID(ctx context.Context, roleID int64) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

// RoleWriter defines write operations for roles
type RoleWriter interface {
	// SaveRole inserts the role and returns its generated ID.
	SaveRole(ctx context.Context, role domain.Role) (int64, error)
	UpdateRole(ctx context.Context, role domain.Role) error

	// DeleteRole fails with apperrors.ErrConflict while users hold the role.
	DeleteRole(ctx context.Context, roleID int64) error
}

// RoleRepositoryFacade combines all role repository interfaces
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}
