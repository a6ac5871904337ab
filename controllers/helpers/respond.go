package helpers

import (
	"errors"

	"mes-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct runs the declarative field validation. A non-nil error
// carries the validator messages for the 422 response body.
func ValidateStruct(input interface{}) error {
	return validate.Struct(input)
}

// ValidationError renders a 422 with the per-field validation messages.
func ValidationError(ctx *fiber.Ctx, err error) error {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  fields,
	})
}

// ServiceError maps business-rule errors onto HTTP responses. Unknown errors
// become a 500.
func ServiceError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrExceedsTarget),
		errors.Is(err, services.ErrExceedsRequirement),
		errors.Is(err, services.ErrExceedsAllocation),
		errors.Is(err, services.ErrInsufficientAvailable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidOperation),
		errors.Is(err, services.ErrLocked):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
}
