package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// SQLSTATE codes of integrity constraint violations.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintErrors names the error each schema constraint stands for. The
// stores validate before writing, so these fire on races (a board deleted
// between the ownership check and the insert) or on rows written by other
// tools.
var constraintErrors = map[string]error{
	"users_username_key":      store.ErrUsernameExists,
	"users_username_length":   domain.ErrInvalidUsername,
	"boards_owner_id_fkey":    store.ErrUserNotFound,
	"boards_title_not_blank":  domain.ErrEmptyBoardTitle,
	"tasks_board_id_fkey":     store.ErrBoardNotFound,
	"tasks_column_key_check":  domain.ErrInvalidColumn,
	"tasks_position_check":    domain.ErrInvalidPosition,
	"tasks_content_not_blank": domain.ErrEmptyContent,
}

// MapError translates a database error into a store or domain error.
// Violations of known constraints map to their entry in constraintErrors;
// other integrity violations map to store.ErrDuplicate or
// store.ErrInvalidEntity. Anything else is returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if target, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return fmt.Errorf("%w: constraint %s violated", target, pgErr.ConstraintName)
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode, checkViolationCode:
		return fmt.Errorf("%w: constraint %s violated: %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: column %s cannot be null: %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	}
	return err
}

// CheckRowsAffected returns store.ErrNotFound, naming entityName, when result
// touched no rows.
func CheckRowsAffected(result sql.Result, entityName string) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	if entityName == "" {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %s not found", store.ErrNotFound, entityName)
}
