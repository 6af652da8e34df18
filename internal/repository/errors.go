package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	appErr "github.com/tripshield/backend/pkg/errors"
)

// PostgreSQL error codes worth distinguishing at the repository boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// conflictMessages maps unique-index constraint names to the message the
// API reports on 409. Index names follow gorm's idx_<table>_<column> scheme.
var conflictMessages = map[string]string{
	"idx_users_email":      "User already exists",
	"idx_tourists_phone":   "Phone already exists",
	"idx_tourists_aadhaar": "Aadhaar already exists",
}

// translateWriteError converts driver-level constraint violations into typed
// application errors. Uniqueness is enforced only here, by the database
// indexes, so concurrent writers cannot race past an application pre-check.
func translateWriteError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			msg := "Already exists"
			if m, ok := conflictMessages[pgErr.ConstraintName]; ok {
				msg = m
			}
			return appErr.Wrap(err, appErr.CodeConflict, msg)
		case pgForeignKeyViolation:
			return appErr.Wrap(err, appErr.CodeInvalid, referencedEntityMessage(pgErr.ConstraintName))
		}
	}
	return appErr.Wrap(err, appErr.CodeInternal, fallback)
}

func referencedEntityMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "tourist"):
		return "touristId does not reference an existing tourist"
	case strings.Contains(constraint, "created_by") || strings.Contains(constraint, "user"):
		return "referenced user does not exist"
	}
	return "referenced row does not exist"
}
