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
)

// accessService resolves user permissions against the configured entity set.
type accessService struct {
	BaseService
	userRepo portsrepo.UserReader
	roleRepo portsrepo.RoleReader
	entities []domain.EntityCode
	known    domain.EntitySet
}

// NewAccessService creates the access service for the configured entities.
func NewAccessService(userRepo portsrepo.UserReader, roleRepo portsrepo.RoleReader, entities []domain.EntityCode, options ...ServiceOption) portssvc.AccessSvcFacade {
	svc := &accessService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		entities: append([]domain.EntityCode(nil), entities...),
		known:    domain.NewEntitySet(entities...),
	}
	svc.apply(options)
	return svc
}

var _ portssvc.AccessSvcFacade = (*accessService)(nil)

func (s *accessService) KnownEntities() []domain.EntityCode {
	return append([]domain.EntityCode(nil), s.entities...)
}

func (s *accessService) ParseEntity(raw string) (domain.EntityCode, error) {
	code := domain.EntityCode(strings.ToUpper(strings.TrimSpace(raw)))
	if code == "" {
		return "", fmt.Errorf("%w: entity is required", apperrors.ErrValidation)
	}
	if !s.known.Contains(code) {
		return "", fmt.Errorf("%w: unknown entity %q", apperrors.ErrValidation, code)
	}
	return code, nil
}

func (s *accessService) ResolveAccess(ctx context.Context, userID string) (*domain.Access, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to load user for access check", slog.String("user_id", userID))
		return nil, err
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}

	role, err := s.roleRepo.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load role for access check",
			slog.String("user_id", userID),
			slog.Int64("role_id", user.RoleID))
		return nil, err
	}

	access := &domain.Access{
		UserID:   user.UserID,
		Role:     *role,
		Features: make(map[domain.Feature]bool, len(role.Features)),
	}
	for _, f := range role.Features {
		access.Features[f] = true
	}
	if role.IsAdmin() {
		access.Entities = domain.NewEntitySet(s.entities...)
	} else {
		access.Entities = domain.NewEntitySet(user.Entities...).Intersect(s.known)
	}
	return access, nil
}

func (s *accessService) AuthorizeFeature(ctx context.Context, userID string, feature domain.Feature) error {
	access, err := s.ResolveAccess(ctx, userID)
	if err != nil {
		return err
	}
	if !access.Can(feature) {
		s.LogWarn(ctx, "Feature access denied",
			slog.String("user_id", userID),
			slog.String("feature", string(feature)))
		return fmt.Errorf("%w: feature %s is not permitted", apperrors.ErrForbidden, feature)
	}
	return nil
}

func (s *accessService) AuthorizeEntity(ctx context.Context, userID string, entity domain.EntityCode, feature domain.Feature) error {
	if !s.known.Contains(entity) {
		return fmt.Errorf("%w: unknown entity %q", apperrors.ErrValidation, entity)
	}
	access, err := s.ResolveAccess(ctx, userID)
	if err != nil {
		return err
	}
	if !access.Can(feature) || !access.CanUseEntity(entity) {
		s.LogWarn(ctx, "Entity access denied",
			slog.String("user_id", userID),
			slog.String("entity", string(entity)),
			slog.String("feature", string(feature)))
		return fmt.Errorf("%w: %s on %s is not permitted", apperrors.ErrForbidden, feature, entity)
	}
	return nil
}

func (s *accessService) PermittedEntities(ctx context.Context, userID string, feature domain.Feature) ([]domain.EntityCode, error) {
	access, err := s.ResolveAccess(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !access.Can(feature) {
		return nil, fmt.Errorf("%w: feature %s is not permitted", apperrors.ErrForbidden, feature)
	}
	permitted := make([]domain.EntityCode, 0, len(s.entities))
	for _, e := range s.entities {
		if access.CanUseEntity(e) {
			permitted = append(permitted, e)
		}
	}
	return permitted, nil
}
