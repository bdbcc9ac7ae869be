package repository

import (
	"errors"
	"fmt"

	huddle_errors "huddle-api/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgNotNullViolation          = "23502"
	pgCheckViolation            = "23514"
	pgInvalidTextRepresentation = "22P02"
)

// classifyPgError maps driver errors onto the API error taxonomy.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return huddle_errors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", huddle_errors.ErrInvalidInput, pgErr.Message)
		case pgInvalidTextRepresentation:
			return huddle_errors.ErrNotFound
		}
	}
	return err
}
