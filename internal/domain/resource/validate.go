package resource

import (
	"fmt"

	huddle_errors "huddle-api/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate enforces the storage schema constraints: owner, user1 and every
// message owner are required.
func (r Resource) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", huddle_errors.ErrInvalidInput, err.Error())
	}
	return nil
}
