package mysql

import (
	"errors"
	"strings"

	"loanlink-backend/internal/domain/apperror"

	"gorm.io/gorm"
)

// translate maps a gorm error onto the store taxonomy. A missing row is
// NotFound; anything else means the backend could not serve the call.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(what)
	}
	if apperror.As(err) != nil {
		return err
	}
	return apperror.Unavailable(err, what+" storage unavailable")
}

// isUniqueViolation recognises duplicate-key errors across mysql, postgres and sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || // mysql 1062
		strings.Contains(msg, "duplicate key value") || // postgres 23505
		strings.Contains(msg, "unique constraint failed") // sqlite
}
