package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/utils"
	"github.com/google/uuid"
)

// UserService implements the UserSvcFacade interface
type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	roleRepo portsrepo.RoleReader
	access   portssvc.AccessSvcFacade
}

// NewUserService creates a new UserService with the given repository and options
func NewUserService(userRepo portsrepo.UserRepositoryFacade, roleRepo portsrepo.RoleReader, access portssvc.AccessSvcFacade, options ...ServiceOption) *UserService {
	svc := &UserService{userRepo: userRepo, roleRepo: roleRepo, access: access}
	svc.EntityAuthorizer = access
	svc.apply(options)
	return svc
}

// Ensure UserService implements UserSvcFacade
var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) parseEntities(raw []string) ([]domain.EntityCode, error) {
	seen := make(map[domain.EntityCode]bool, len(raw))
	codes := make([]domain.EntityCode, 0, len(raw))
	for _, r := range raw {
		code, err := s.access.ParseEntity(r)
		if err != nil {
			return nil, err
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (s *UserService) checkRole(ctx context.Context, roleID int64) error {
	if _, err := s.roleRepo.FindRoleByID(ctx, roleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: role %d does not exist", apperrors.ErrValidation, roleID)
		}
		return err
	}
	return nil
}

// CreateUser creates a new user with a bcrypt password hash.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return nil, err
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	entities, err := s.parseEntities(req.Entities)
	if err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, req.RoleID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		RoleID:       req.RoleID,
		Entities:     entities,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(requestingUserID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created successfully", slog.String("user_id", user.UserID), slog.String("username", username))
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not found", slog.String("user_id", userID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all non-deleted users.
func (s *UserService) ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error) {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateUser updates name, role, entities and active flag.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.RoleID != nil {
		if err := s.checkRole(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *req.RoleID
	}
	if req.Entities != nil {
		entities, err := s.parseEntities(*req.Entities)
		if err != nil {
			return nil, err
		}
		user.Entities = entities
	}
	if req.IsActive != nil {
		if !*req.IsActive && userID == requestingUserID {
			return nil, fmt.Errorf("%w: you cannot deactivate yourself", apperrors.ErrValidation)
		}
		user.IsActive = *req.IsActive
	}
	user.Touch(requestingUserID, s.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}
	s.LogInfo(ctx, "User updated successfully", slog.String("user_id", userID))
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, s.Now(), userID); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

// DeleteUser marks a user as deleted.
func (s *UserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return err
	}
	if userID == requestingUserID {
		return fmt.Errorf("%w: you cannot delete yourself", apperrors.ErrValidation)
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user in service: %w", err)
	}
	s.LogInfo(ctx, "User deleted successfully", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser checks a username/password pair. Every failure is
// reported as ErrUnauthorized so callers cannot probe for usernames.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if !user.IsActive || user.DeletedAt != nil {
		s.LogWarn(ctx, "Login attempt for inactive user", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
