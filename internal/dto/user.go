package dto

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50,alphanum"`
	Password string   `json:"password" binding:"required,min=8,max=72"`
	Name     string   `json:"name" binding:"required,max=100"`
	RoleID   int64    `json:"roleID" binding:"required,gt=0"`
	Entities []string `json:"entities"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string   `json:"name" binding:"omitempty,max=100"`
	RoleID   *int64    `json:"roleID" binding:"omitempty,gt=0"`
	Entities *[]string `json:"entities"`
	IsActive *bool     `json:"isActive"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID   string              `json:"userID"`
	Username string              `json:"username"`
	Name     string              `json:"name"`
	RoleID   int64               `json:"roleID"`
	Entities []domain.EntityCode `json:"entities"`
	IsActive bool                `json:"isActive"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	entities := user.Entities
	if entities == nil {
		entities = []domain.EntityCode{}
	}
	return UserResponse{
		UserID:   user.GetUserID(),
		Username: user.GetUsername(),
		Name:     user.GetName(),
		RoleID:   user.RoleID,
		Entities: entities,
		IsActive: user.IsActive,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

// MeResponse summarises what the caller may do.
type MeResponse struct {
	User     UserResponse        `json:"user"`
	Role     string              `json:"role"`
	Entities []domain.EntityCode `json:"entities"`
	Features []domain.Feature    `json:"features"`
}

// ToMeResponse builds a MeResponse from a user and their resolved access.
func ToMeResponse(user *domain.User, access *domain.Access) MeResponse {
	features := make([]domain.Feature, 0, len(domain.AllFeatures))
	for _, f := range domain.AllFeatures {
		if access.Can(f) {
			features = append(features, f)
		}
	}
	return MeResponse{
		User:     ToUserResponse(user),
		Role:     access.Role.Name,
		Entities: access.Entities.Codes(),
		Features: features,
	}
}

// CreateRoleRequest defines the data needed to create a role.
type CreateRoleRequest struct {
	Name        string           `json:"name" binding:"required,max=50"`
	Description string           `json:"description" binding:"max=255"`
	Features    []domain.Feature `json:"features" binding:"dive,feature"`
}

// UpdateRoleRequest defines the editable fields of a role.
type UpdateRoleRequest struct {
	Description *string           `json:"description" binding:"omitempty,max=255"`
	Features    *[]domain.Feature `json:"features" binding:"omitempty,dive,feature"`
}

// RoleResponse defines the data returned for a role.
type RoleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Features    []domain.Feature `json:"features"`
}

// ToRoleResponse converts a domain.Role to RoleResponse DTO
func ToRoleResponse(r *domain.Role) RoleResponse {
	features := r.Features
	if features == nil {
		features = []domain.Feature{}
	}
	return RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, Features: features}
}

// ToListRoleResponse converts roles to DTOs
func ToListRoleResponse(roles []domain.Role) []RoleResponse {
	res := make([]RoleResponse, len(roles))
	for i := range roles {
		res[i] = ToRoleResponse(&roles[i])
	}
	return res
}

// EntitiesResponse lists the configured entities and those the caller may use.
type EntitiesResponse struct {
	All       []domain.EntityCode `json:"all"`
	Permitted []domain.EntityCode `json:"permitted"`
}
