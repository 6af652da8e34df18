package validators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator configured the way the request types expect.
func New() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// Message renders the first field violation as a short, stable reason
// suitable for the `{ "error": ... }` envelope.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "email":
			return field + " must be a valid email"
		case "oneof":
			return field + " must be one of " + fe.Param()
		}
		return field + " is invalid"
	}
	return "invalid request"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
