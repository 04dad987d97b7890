package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperrors.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "categories_name_key"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrConflict},
		{"check", &pgconn.PgError{Code: pgCheckViolation}, apperrors.ErrValidation},
		{"serialization", &pgconn.PgError{Code: pgSerializationFailure}, apperrors.ErrConflict},
		{"serialization at commit", fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgSerializationFailure}), apperrors.ErrConflict},
		{"commit became rollback", pgx.ErrTxCommitRollback, apperrors.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPgError(tt.err, "op failed"), tt.want)
		})
	}
}

func TestMapPgError_UnknownBecomesAppError(t *testing.T) {
	cause := errors.New("connection reset")
	err := mapPgError(cause, "failed to list")

	var appErr *apperrors.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, 500, appErr.Code)
		assert.Equal(t, "failed to list", appErr.Message)
	}
	assert.ErrorIs(t, err, cause)
}

func TestExpectOneRow(t *testing.T) {
	assert.ErrorIs(t, expectOneRow(pgconn.NewCommandTag("DELETE 0")), apperrors.ErrNotFound)
	assert.NoError(t, expectOneRow(pgconn.NewCommandTag("UPDATE 1")))
}
