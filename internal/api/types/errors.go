package types

import (
	"errors"
	"net/http"

	appErr "github.com/tripshield/backend/pkg/errors"
)

// HTTPStatus maps an application error to its HTTP status code. Anything
// without a recognized code is an unexpected failure.
func HTTPStatus(err error) int {
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage extracts the user-facing message, hiding wrapped driver detail.
func ErrorMessage(err error) string {
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}
