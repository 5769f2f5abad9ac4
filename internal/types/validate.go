package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailTag is the validator tag for the student e-mail format rule.
const EmailTag = "student_email"

// validate caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidEmail applies the e-mail format rule: longer than 5 characters,
// contains "@" and ".", and neither starts nor ends with "@".
func ValidEmail(email string) bool {
	return len(email) > 5 &&
		strings.Contains(email, "@") &&
		strings.Contains(email, ".") &&
		!strings.HasPrefix(email, "@") &&
		!strings.HasSuffix(email, "@")
}

// Validate checks every field of s. The returned error, when not nil, is
// a validator.ValidationErrors.
func (s Student) Validate() error {
	return validate.Struct(s)
}

// ValidateFields checks only the named fields (Go field names, e.g.
// "Name", "Age"). Used when input is collected one field at a time.
func (s Student) ValidateFields(fields ...string) error {
	return validate.StructPartial(s, fields...)
}
