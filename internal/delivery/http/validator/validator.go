// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "almacen/internal/domain/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New builds the validator installed on the echo instance.
func New() echo.Validator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate runs struct validation and maps failures to the application
// error taxonomy so the error handler renders them as 400s.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	return nil
}
