package services

import (
	"context"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// EntityAuthorizerSvc checks whether a user may act on an entity within a feature area.
type EntityAuthorizerSvc interface {
	// AuthorizeEntity returns apperrors.ErrForbidden unless the user holds
	// feature and is assigned entity. Unknown entities are a validation error.
	AuthorizeEntity(ctx context.Context, userID string, entity domain.EntityCode, feature domain.Feature) error

	// AuthorizeFeature returns apperrors.ErrForbidden unless the user holds feature.
	AuthorizeFeature(ctx context.Context, userID string, feature domain.Feature) error
}

// AccessSvcFacade resolves and checks user permissions.
type AccessSvcFacade interface {
	EntityAuthorizerSvc

	// ResolveAccess loads the user's role, entities and features.
	ResolveAccess(ctx context.Context, userID string) (*domain.Access, error)

	// PermittedEntities returns the entities the user may use for feature, in configured order.
	PermittedEntities(ctx context.Context, userID string, feature domain.Feature) ([]domain.EntityCode, error)

	// KnownEntities returns every configured entity code.
	KnownEntities() []domain.EntityCode

	// ParseEntity normalises a request value and checks it is a configured entity.
	ParseEntity(raw string) (domain.EntityCode, error)
}
