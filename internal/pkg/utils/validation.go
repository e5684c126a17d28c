package utils

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validator tags of request and wraps the first failure
// into a client-presentable error.
func ValidateStruct(request interface{}) error {
	if err := validate.Struct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
