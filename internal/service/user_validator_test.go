package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "userhub/internal/errors"
)

func violationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *apperrors.ValidationError
	if !assert.ErrorAs(t, err, &vErr) {
		return nil
	}
	fields := make(map[string]string, len(vErr.Violations))
	for _, v := range vErr.Violations {
		fields[v.Field] = v.Reason
	}
	return fields
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserValidator_ValidateCreate(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name      string
		input     CreateUserInput
		wantField string
	}{
		{"valid minimal", CreateUserInput{Name: "Jo", Email: "jo@x.com"}, ""},
		{"valid full", CreateUserInput{
			Name: "Jo Ann", Email: "jo@x.com",
			Age: intPtr(30), City: strPtr("Lisbon"), Phone: strPtr("+351 (21) 123-4567"),
		}, ""},
		{"name required", CreateUserInput{Email: "jo@x.com"}, "name"},
		{"name too short", CreateUserInput{Name: "J", Email: "jo@x.com"}, "name"},
		{"name too long", CreateUserInput{Name: strings.Repeat("a", 51), Email: "jo@x.com"}, "name"},
		{"whitespace name is empty after trimming", CreateUserInput{Name: "   ", Email: "jo@x.com"}, "name"},
		{"email required", CreateUserInput{Name: "Jo"}, "email"},
		{"email malformed", CreateUserInput{Name: "Jo", Email: "not-an-email"}, "email"},
		{"age below range", CreateUserInput{Name: "Jo", Email: "jo@x.com", Age: intPtr(0)}, "age"},
		{"age above range", CreateUserInput{Name: "Jo", Email: "jo@x.com", Age: intPtr(151)}, "age"},
		{"city too long", CreateUserInput{Name: "Jo", Email: "jo@x.com", City: strPtr(strings.Repeat("c", 101))}, "city"},
		{"phone with letters", CreateUserInput{Name: "Jo", Email: "jo@x.com", Phone: strPtr("call me")}, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			err := v.ValidateCreate(&input)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			fields := violationFields(t, err)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestUserValidator_ValidateCreate_Normalizes(t *testing.T) {
	v := NewUserValidator()

	input := CreateUserInput{
		Name:  "  Jo Ann  ",
		Email: "  JO@X.COM ",
		City:  strPtr("  Lisbon "),
	}
	err := v.ValidateCreate(&input)

	assert.NoError(t, err)
	assert.Equal(t, "Jo Ann", input.Name)
	assert.Equal(t, "jo@x.com", input.Email)
	assert.Equal(t, "Lisbon", *input.City)
}

func TestUserValidator_ValidateUpdate(t *testing.T) {
	v := NewUserValidator()

	t.Run("absent fields are not violations", func(t *testing.T) {
		input := UpdateUserInput{}
		assert.NoError(t, v.ValidateUpdate(&input))
	})

	t.Run("present fields are checked", func(t *testing.T) {
		input := UpdateUserInput{Name: strPtr("J"), Age: intPtr(200)}
		fields := violationFields(t, v.ValidateUpdate(&input))
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "age")
	})

	t.Run("email normalized", func(t *testing.T) {
		input := UpdateUserInput{Email: strPtr(" NEW@X.COM ")}
		assert.NoError(t, v.ValidateUpdate(&input))
		assert.Equal(t, "new@x.com", *input.Email)
	})
}
