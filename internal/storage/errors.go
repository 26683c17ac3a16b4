package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrForeignKey reports a referential-integrity failure, e.g. a
	// calculation whose user_id does not name an existing user.
	ErrForeignKey = errors.New("foreign key violation")
)

// mapError converts gorm and driver errors to storage errors.
// Context errors pass through.
func mapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s %v: %w: %w", entity, id, ErrForeignKey, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %v: %w: %w", entity, id, ErrAlreadyExists, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s %v: %w: %w", entity, id, ErrForeignKey, err)
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s %v: %w: %w", entity, id, ErrAlreadyExists, err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w: %w", entity, id, ErrForeignKey, err)
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w: %w", entity, id, ErrAlreadyExists, err)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
