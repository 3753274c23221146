// Package validation declares the console's HTML form models and their
// validation rules.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared across requests; Validate instances cache struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginForm is the email form on the sign-in page.
type LoginForm struct {
	Email string `form:"email" validate:"required,email"`
}

// VerifyForm is the one-time code form.
type VerifyForm struct {
	Email string `form:"email" validate:"required,email"`
	Code  string `form:"code"  validate:"required,numeric,min=4,max=8"`
}

// ProfileForm is the profile completion form.
type ProfileForm struct {
	FullName string `form:"full_name" validate:"required,min=2,max=120"`
	Phone    string `form:"phone"     validate:"required,e164"`
	Country  string `form:"country"   validate:"omitempty,iso3166_1_alpha2"`
}

// TenantForm is the workspace creation form.
type TenantForm struct {
	Name               string `form:"name"                 validate:"required,min=2,max=100"`
	AcceptedTerms      bool   `form:"accepted_terms"       validate:"required"`
	NotificationsOptIn bool   `form:"notifications_opt_in" validate:"-"`
	ReferralCode       string `form:"referral_code"        validate:"omitempty,max=64"`
}

// InviteForm is the member invitation form.
type InviteForm struct {
	Email string `form:"email" validate:"required,email"`
	Role  string `form:"role"  validate:"required,oneof=ADMIN STAFF"`
}

// Check validates a form struct and returns field-level error messages keyed
// by struct field name. An empty map means the form is valid.
func Check(form any) (map[string]string, error) {
	err := validate.Struct(form)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate form: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return fields, nil
}

// messageFor turns a validator tag failure into a user-facing message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return labelFor(fe.Field()) + " is required."
	case "email":
		return "Enter a valid email address."
	case "numeric":
		return "The code must contain digits only."
	case "e164":
		return "Enter a phone number in international format, e.g. +254700000000."
	case "iso3166_1_alpha2":
		return "Enter a two-letter country code."
	case "oneof":
		return labelFor(fe.Field()) + " must be one of: " + fe.Param() + "."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", labelFor(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", labelFor(fe.Field()), fe.Param())
	default:
		return labelFor(fe.Field()) + " is invalid."
	}
}

func labelFor(field string) string {
	switch field {
	case "Email":
		return "Email"
	case "Code":
		return "Code"
	case "FullName":
		return "Full name"
	case "Phone":
		return "Phone number"
	case "Country":
		return "Country"
	case "Name":
		return "Workspace name"
	case "AcceptedTerms":
		return "Terms acceptance"
	case "ReferralCode":
		return "Referral code"
	case "Role":
		return "Role"
	default:
		return field
	}
}
