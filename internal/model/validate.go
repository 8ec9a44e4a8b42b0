package model

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(MinPasswordLength, 0),
}

// notBlank rejects strings made only of whitespace. Empty and nil values
// are left to Required and NilOrNotEmpty.
var notBlank = validation.Match(regexp.MustCompile(`\S`)).Error("must not be blank")

var rolesRule = validation.By(func(value any) error {
	roles, _ := value.([]Role)
	for _, role := range roles {
		if !IsValidRole(role) {
			return errors.New("must be one of: " + strings.Join(ValidRoles, ", "))
		}
	}
	return nil
})

// ValidatePassword checks a plaintext password against the length policy.
func ValidatePassword(password string) error {
	return fromValidation(validation.Validate(password, passwordRules...))
}

// Validate checks the sign-up payload.
func (in SignUpInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 200), notBlank),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, passwordRules...),
	))
}

// Validate checks the login payload.
func (in LoginInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, passwordRules...),
	))
}

// Validate checks the user update payload. An explicitly empty role set is
// rejected because every user holds at least one role.
func (in UpdateUserInput) Validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&in.FullName, validation.NilOrNotEmpty, validation.Length(1, 200), notBlank),
		validation.Field(&in.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&in.Password, validation.NilOrNotEmpty, validation.Length(MinPasswordLength, 0)),
		validation.Field(&in.Roles, rolesRule),
	}
	if in.Roles != nil {
		rules[3] = validation.Field(&in.Roles, validation.Required, rolesRule)
	}
	return fromValidation(validation.ValidateStruct(&in, rules...))
}

// Validate checks the item creation payload.
func (in CreateItemInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200), notBlank),
		validation.Field(&in.QuantityUnits, validation.NilOrNotEmpty, notBlank),
	))
}

// Validate checks the item update payload.
func (in UpdateItemInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 200), notBlank),
		validation.Field(&in.QuantityUnits, validation.NilOrNotEmpty, notBlank),
	))
}

// Validate checks the list creation payload.
func (in CreateListInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200), notBlank),
	))
}

// Validate checks the list update payload.
func (in UpdateListInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 200), notBlank),
	))
}

// Validate checks the list item creation payload.
func (in CreateListItemInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Quantity, validation.Min(0)),
		validation.Field(&in.ListID, validation.Required, is.UUID),
		validation.Field(&in.ItemID, validation.Required, is.UUID),
	))
}

// Validate checks the list item update payload.
func (in UpdateListItemInput) Validate() error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Quantity, validation.Min(0)),
		validation.Field(&in.ListID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&in.ItemID, validation.NilOrNotEmpty, is.UUID),
	))
}
