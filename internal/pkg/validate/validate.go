package validate

import (
	"fmt"
	"strings"

	"github.com/findr-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. Custom tags are registered in
// init() before the first call to Struct.
var v = validator.New()

func init() {
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.IsCategory(fl.Field().String())
	})
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
