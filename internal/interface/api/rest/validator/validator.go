package validator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"users-api/internal/domain/user"
	dto "users-api/internal/interface/api/rest/dto/user"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseID reports false for anything that is not a positive base-10 integer.
func ParseID(s string) (bool, user.ID) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return false, 0
	}
	return true, user.ID(id)
}

// ValidateUser returns field -> message for every failed constraint, nil when valid.
func ValidateUser(r dto.Request) map[string]string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return map[string]string{"body": err.Error()}
	}

	errs := make(map[string]string, len(ves))
	for _, fe := range ves {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errs[field] = field + " is required"
		default:
			errs[field] = "invalid " + field
		}
	}

	return errs
}
