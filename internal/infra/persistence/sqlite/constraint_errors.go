package sqlite

import (
	"strings"

	domainerrors "quest/internal/domain/errors"
	"quest/internal/errors"

	"gorm.io/gorm"
)

// Helper functions for SQLite error checking. The driver's error translator covers
// the common constraint codes; the message checks catch the rest.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isNotNullConstraintViolation(err error) bool {
	return strings.Contains(err.Error(), "NOT NULL constraint failed")
}

func isMissingTable(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}

// translateError maps a driver error to the domain error taxonomy.
func translateError(err error, details string) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrForeignKeyViolation.WithDetails(err.Error()).WrapMessage(details)
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrDuplicateRecord.WithDetails(err.Error()).WrapMessage(details)
	case isNotNullConstraintViolation(err):
		return domainerrors.ErrMissingField.WithDetails(err.Error()).WrapMessage(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}
