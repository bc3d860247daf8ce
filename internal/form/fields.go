package form

import "github.com/Veraticus/coinpurse/internal/validation"

// NewFieldForm creates a controller over the shared validation rule table.
func NewFieldForm(fields ...validation.Field) *Controller[validation.Field] {
	return New(FieldSchema(fields...))
}

// FieldSchema builds a schema from the validation rule table.
func FieldSchema(fields ...validation.Field) Schema[validation.Field] {
	return Schema[validation.Field]{
		Fields: fields,
		Validate: func(f validation.Field, value string, lookup func(validation.Field) string) string {
			return validation.Validate(f, value, lookup)
		},
		Dependents: validation.Dependents,
		Name:       validation.Field.String,
	}
}

// NewLoginForm collects login credentials.
func NewLoginForm() *Controller[validation.Field] {
	return NewFieldForm(validation.Email, validation.Password)
}

// NewRegisterForm collects a new account.
func NewRegisterForm() *Controller[validation.Field] {
	return NewFieldForm(validation.Name, validation.Email, validation.Password, validation.ConfirmPassword)
}
