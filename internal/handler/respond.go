package handler

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"causajusta/internal/errors"
	"causajusta/internal/upstream"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates the validator echo binds to c.Validate.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Validator exposes the underlying instance for field-error mapping.
func (cv *CustomValidator) Validator() *validator.Validate {
	return cv.validator
}

func isSlugConflict(err error) bool {
	return stderrors.Is(err, upstream.ErrSlugTaken)
}

// httpError translates domain and upstream errors into the standard error
// response shape.
func httpError(err error) *echo.HTTPError {
	mapped := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
