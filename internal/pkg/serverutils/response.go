package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and folds the
// field errors into a single VALIDATION_ERROR.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return NewValidationError(strings.Join(msgs, "; "))
		}
		return NewValidationError(err.Error())
	}
	return nil
}
