package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("advertisement already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// IsConstraintViolation reports whether err is an integrity-constraint failure
// raised by the store (unique, foreign key, check, not null). Repositories
// return such errors unchanged; callers use this to tell them apart from
// connectivity failures.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	// class 23: integrity constraint violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "check constraint") ||
		strings.Contains(msg, "not null constraint") ||
		strings.Contains(msg, "duplicate key")
}
