package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// IsIsoDate accepts a bare calendar date in YYYY-MM-DD form.
// Empty values pass; pair with `required` when the field is mandatory.
func IsIsoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
