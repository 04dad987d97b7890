package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/SscSPs/kasbook/internal/models"
	"github.com/SscSPs/kasbook/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, name, role_id, entities, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		return nil, mapPgError(err, "failed to query user")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapPgError(err, "failed to scan user")
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByID also returns soft-deleted users so history stays resolvable.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `username = $1 AND deleted_at IS NULL`, username)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY username`)
	if err != nil {
		return nil, mapPgError(err, "failed to list users")
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapPgError(err, "failed to scan users")
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.UserID, m.Username, m.PasswordHash, m.Name, m.RoleID, m.Entities, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to save user "+user.Username)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `UPDATE users SET name = $2, role_id = $3, entities = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $1 AND deleted_at IS NULL`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.UserID, m.Name, m.RoleID, m.Entities, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update user "+user.UserID)
	}
	return expectOneRow(tag)
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, updatedAt time.Time, updatedBy string) error {
	query := `UPDATE users SET password_hash = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND deleted_at IS NULL`
	tag, err := r.db(ctx).Exec(ctx, query, userID, passwordHash, updatedAt, updatedBy)
	if err != nil {
		return mapPgError(err, "failed to update password for user "+userID)
	}
	return expectOneRow(tag)
}

// MarkUserDeleted soft-deletes the user and deactivates it.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	query := `UPDATE users SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL`
	tag, err := r.db(ctx).Exec(ctx, query, userID, deletedAt, deletedBy)
	if err != nil {
		return mapPgError(err, "failed to mark user deleted "+userID)
	}
	return expectOneRow(tag)
}

const roleColumns = `role_id, name, description, features, created_at, updated_at`

type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(pool *pgxpool.Pool) *PgxRoleRepository {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func (r *PgxRoleRepository) findOne(ctx context.Context, where string, arg any) (*domain.Role, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+roleColumns+` FROM roles WHERE `+where, arg)
	if err != nil {
		return nil, mapPgError(err, "failed to query role")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Role])
	if err != nil {
		return nil, mapPgError(err, "failed to scan role")
	}
	role := mapping.ToDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID int64) (*domain.Role, error) {
	return r.findOne(ctx, `role_id = $1`, roleID)
}

func (r *PgxRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, `name = $1`, name)
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, mapPgError(err, "failed to list roles")
	}
	roles, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Role])
	if err != nil {
		return nil, mapPgError(err, "failed to scan roles")
	}
	return mapping.ToDomainRoleSlice(roles), nil
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) (int64, error) {
	m := mapping.ToModelRole(role)
	query := `INSERT INTO roles (name, description, features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING role_id`
	var id int64
	if err := r.db(ctx).QueryRow(ctx, query, m.Name, m.Description, m.Features, m.CreatedAt, m.UpdatedAt).Scan(&id); err != nil {
		return 0, mapPgError(err, "failed to save role "+role.Name)
	}
	return id, nil
}

func (r *PgxRoleRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	m := mapping.ToModelRole(role)
	query := `UPDATE roles SET name = $2, description = $3, features = $4, updated_at = $5 WHERE role_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query, m.RoleID, m.Name, m.Description, m.Features, m.UpdatedAt)
	if err != nil {
		return mapPgError(err, "failed to update role "+role.Name)
	}
	return expectOneRow(tag)
}

// DeleteRole relies on the users.role_id foreign key, so a role still held
// by any user (deleted users included) fails with apperrors.ErrConflict.
func (r *PgxRoleRepository) DeleteRole(ctx context.Context, roleID int64) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM roles WHERE role_id = $1`, roleID)
	if err != nil {
		return mapPgError(err, "failed to delete role")
	}
	return expectOneRow(tag)
}
