package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translate maps store errors onto the business taxonomy; entity names the
// row kind in the error code ("user" -> user_not_found / user_exists).
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(entity+"_not_found", entity+" not found")
	}
	if isUniqueViolation(err) {
		return httperr.Conflict(entity+"_exists", entity+" already exists")
	}
	return err
}
