package models

import (
	"time"
)

// User represents a row of the users table.
type User struct {
	UserID       string   `db:"user_id"`
	Username     string   `db:"username"`
	PasswordHash string   `db:"password_hash"`
	Name         string   `db:"name"`
	RoleID       int64    `db:"role_id"`
	Entities     []string `db:"entities"` // TEXT[]
	IsActive     bool     `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Role represents a row of the roles table.
type Role struct {
	RoleID      int64     `db:"role_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Features    []string  `db:"features"` // TEXT[]
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
