package mapping

import (
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	entities := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		entities[i] = string(e)
	}
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		RoleID:       d.RoleID,
		Entities:     entities,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	entities := make([]domain.EntityCode, len(m.Entities))
	for i, e := range m.Entities {
		entities[i] = domain.EntityCode(e)
	}
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		RoleID:       m.RoleID,
		Entities:     entities,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToModelRole converts a domain Role to a model Role
func ToModelRole(d domain.Role) models.Role {
	features := make([]string, len(d.Features))
	for i, f := range d.Features {
		features[i] = string(f)
	}
	return models.Role{
		RoleID:      d.ID,
		Name:        d.Name,
		Description: d.Description,
		Features:    features,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainRole converts a model Role to a domain Role
func ToDomainRole(m models.Role) domain.Role {
	features := make([]domain.Feature, len(m.Features))
	for i, f := range m.Features {
		features[i] = domain.Feature(f)
	}
	return domain.Role{
		ID:          m.RoleID,
		Name:        m.Name,
		Description: m.Description,
		Features:    features,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainRoleSlice converts a slice of model Roles to domain Roles
func ToDomainRoleSlice(ms []models.Role) []domain.Role {
	ds := make([]domain.Role, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRole(m)
	}
	return ds
}
