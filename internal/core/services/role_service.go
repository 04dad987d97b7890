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
)

type roleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
}

// NewRoleService creates the role administration service.
func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade, options ...ServiceOption) portssvc.RoleSvcFacade {
	svc := &roleService{roleRepo: roleRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

func uniqueFeatures(features []domain.Feature) ([]domain.Feature, error) {
	seen := make(map[domain.Feature]bool, len(features))
	out := make([]domain.Feature, 0, len(features))
	for _, f := range features {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: unknown feature %q", apperrors.ErrValidation, f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *roleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest, requestingUserID string) (*domain.Role, error) {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return nil, err
	}
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	features, err := uniqueFeatures(req.Features)
	if err != nil {
		return nil, err
	}
	if _, err := s.roleRepo.FindRoleByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: role %q", apperrors.ErrDuplicate, name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.Now()
	role := domain.Role{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Features:    features,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.roleRepo.SaveRole(ctx, role)
	if err != nil {
		s.LogError(ctx, err, "Failed to save role", slog.String("name", name))
		return nil, fmt.Errorf("failed to save role: %w", err)
	}
	role.ID = id
	s.LogInfo(ctx, "Role created", slog.Int64("role_id", id), slog.String("name", name))
	return &role, nil
}

func (s *roleService) GetRole(ctx context.Context, roleID int64) (*domain.Role, error) {
	return s.roleRepo.FindRoleByID(ctx, roleID)
}

func (s *roleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.ListRoles(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roles")
		return nil, err
	}
	if roles == nil {
		return []domain.Role{}, nil
	}
	return roles, nil
}

// UpdateRole changes a role's description and features. The admin role
// implies every feature, so its feature list is fixed.
func (s *roleService) UpdateRole(ctx context.Context, roleID int64, req dto.UpdateRoleRequest, requestingUserID string) (*domain.Role, error) {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		role.Description = strings.TrimSpace(*req.Description)
	}
	if req.Features != nil {
		if role.IsAdmin() {
			return nil, fmt.Errorf("%w: the admin role always has every feature", apperrors.ErrValidation)
		}
		features, err := uniqueFeatures(*req.Features)
		if err != nil {
			return nil, err
		}
		role.Features = features
	}
	role.UpdatedAt = s.Now()

	if err := s.roleRepo.UpdateRole(ctx, *role); err != nil {
		s.LogError(ctx, err, "Failed to update role", slog.Int64("role_id", roleID))
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

func (s *roleService) DeleteRole(ctx context.Context, roleID int64, requestingUserID string) error {
	if err := s.AuthorizeFeature(ctx, requestingUserID, domain.FeatureUserAdmin); err != nil {
		return err
	}
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsAdmin() {
		return fmt.Errorf("%w: the admin role cannot be deleted", apperrors.ErrValidation)
	}
	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete role", slog.Int64("role_id", roleID))
		}
		return err
	}
	s.LogInfo(ctx, "Role deleted", slog.Int64("role_id", roleID))
	return nil
}
