package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

const pgForeignKeyViolation = "23503"

// translate maps driver errors of reads and inserts/updates onto usecase
// error kinds. A foreign key violation there means the payload points at a
// record that does not exist.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrNotFound
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: referenced record does not exist", usecase.ErrValidation)
	}
	return err
}

// translateDelete maps a foreign key violation to ErrHasDependents: the row
// is still referenced.
func translateDelete(err error) error {
	if err != nil && isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", usecase.ErrHasDependents, err)
	}
	return translate(err)
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return true
	}
	// sqlite reports constraint failures as plain messages
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// affected turns a write that matched no row into ErrNotFound.
func affected(tx *gorm.DB, translateFn func(error) error) error {
	if tx.Error != nil {
		return translateFn(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
