package domain

import "time"

// Feature is a permitted feature area of the application.
type Feature string

const (
	FeaturePettyCash         Feature = "petty_cash"
	FeaturePettyCashApproval Feature = "petty_cash_approval"
	FeatureCashFlow          Feature = "cash_flow"
	FeatureSales             Feature = "sales"
	FeatureCategories        Feature = "categories"
	FeatureReports           Feature = "reports"
	FeatureUserAdmin         Feature = "user_admin"
)

// AllFeatures lists every feature area.
var AllFeatures = []Feature{
	FeaturePettyCash,
	FeaturePettyCashApproval,
	FeatureCashFlow,
	FeatureSales,
	FeatureCategories,
	FeatureReports,
	FeatureUserAdmin,
}

func (f Feature) Valid() bool {
	for _, known := range AllFeatures {
		if f == known {
			return true
		}
	}
	return false
}

// RoleAdminName is the seeded role that implies every feature and entity.
const RoleAdminName = "admin"

// Role groups feature areas.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the role is the administrator role.
func (r Role) IsAdmin() bool {
	return r.Name == RoleAdminName
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string       `json:"userID"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	RoleID       int64        `json:"roleID"`
	Entities     []EntityCode `json:"entities"`
	IsActive     bool         `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (u *User) GetUserID() string   { return u.UserID }
func (u *User) GetUsername() string { return u.Username }
func (u *User) GetName() string     { return u.Name }

// Access is the resolved authorization of a user: entities and feature areas.
type Access struct {
	UserID   string
	Role     Role
	Entities EntitySet
	Features map[Feature]bool
}

// Can reports whether the user holds feature.
func (a Access) Can(feature Feature) bool {
	return a.Role.IsAdmin() || a.Features[feature]
}

// CanUseEntity reports whether the user may act on entity.
func (a Access) CanUseEntity(entity EntityCode) bool {
	return a.Entities.Contains(entity)
}
