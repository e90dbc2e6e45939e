package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "userhub/internal/errors"
)

// CreateUserInput is the payload accepted when creating a user record.
type CreateUserInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=50"`
	Email string  `json:"email" validate:"required,email"`
	Age   *int    `json:"age" validate:"omitempty,min=1,max=150"`
	City  *string `json:"city" validate:"omitempty,max=100"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

// UpdateUserInput is the payload accepted when updating a record. Absent
// fields are left untouched; present fields replace the stored values.
type UpdateUserInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
	Age   *int    `json:"age" validate:"omitempty,min=1,max=150"`
	City  *string `json:"city" validate:"omitempty,max=100"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

var phonePattern = regexp.MustCompile(`^[0-9+\-()\s]+$`)

// UserValidator enforces the record schema at the point of write, independent
// of persistence so it can be tested without a live store.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator creates a validator with the custom phone rule registered.
func NewUserValidator() *UserValidator {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &UserValidator{validate: v}
}

// ValidateCreate normalizes the input in place and checks every constraint,
// reporting all violations together.
func (uv *UserValidator) ValidateCreate(input *CreateUserInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	trimOptional(input.City)

	if err := uv.validate.Struct(input); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ValidateUpdate normalizes present fields in place and checks them.
func (uv *UserValidator) ValidateUpdate(input *UpdateUserInput) error {
	trimOptional(input.Name)
	if input.Email != nil {
		*input.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	trimOptional(input.City)

	if err := uv.validate.Struct(input); err != nil {
		return toValidationError(err)
	}
	return nil
}

func trimOptional(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func toValidationError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	violations := make([]apperrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperrors.FieldViolation{
			Field:  strings.ToLower(fe.Field()),
			Reason: violationReason(fe),
		})
	}
	return apperrors.NewValidationError(violations)
}

func violationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "may only contain digits, spaces and + - ( )"
	case "min":
		if fe.Kind().String() == "string" {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
