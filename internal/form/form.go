// Package form validates the user input of the login, offer, inquiry and password forms.
package form

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldErrors maps the names of invalid form fields to their error messages
type FieldErrors map[string]string

// Error implements the error interface
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + e[field])
	}
	return b.String()
}

// Form represents a form with a message for each of its validation rules
type Form interface {
	// messages maps `field.rule` to the message shown when the field breaks the rule
	messages() map[string]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their form names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the given form, returning FieldErrors when any field is invalid
func Validate(f Form) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := f.messages()
	res := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, ok := res[fe.Field()]; ok {
			continue
		}
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		res[fe.Field()] = msg
	}
	return res
}

// Login represents the sign-in form
type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (Login) messages() map[string]string {
	return map[string]string{
		"email.required":    "Required",
		"email.email":       "Invalid email address",
		"password.required": "Required",
	}
}

// Offer represents the form publishing or editing an offer
type Offer struct {
	ServiceID           int64      `form:"chosenService" validate:"required"`
	LoadingTerminalID   int64      `form:"chosenLoadingPort" validate:"required"`
	LoadingDate         *time.Time `form:"selectedLoadingDate" validate:"required"`
	DischargeTerminalID int64      `form:"chosenDischargePort" validate:"required"`
	AvailableTEU        int        `form:"availableTEU" validate:"required,gt=0"`
	ContactEmail        string     `form:"emailContact" validate:"required,email"`
	OpenUntil           *time.Time `form:"selectedOpenUntilDate" validate:"required"`
}

func (Offer) messages() map[string]string {
	return map[string]string{
		"chosenService.required":         "Required service",
		"chosenLoadingPort.required":     "Port of loading required",
		"selectedLoadingDate.required":   "Date of loading required",
		"chosenDischargePort.required":   "Port of discharge required",
		"availableTEU.required":          "Available TEU required",
		"availableTEU.gt":                "Available TEU required",
		"emailContact.required":          "email required",
		"emailContact.email":             "email incorrect",
		"selectedOpenUntilDate.required": "Expire Date required",
	}
}

// Contact represents the contact details form of an inquiry
type Contact struct {
	FullName string `form:"fullName" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Quantity int    `form:"quantity" validate:"gte=0"` // optional
}

func (Contact) messages() map[string]string {
	return map[string]string{
		"fullName.required": "Required Full Name",
		"email.required":    "email required",
		"email.email":       "email incorrect",
		"quantity.gte":      "Quantity can't be negative",
	}
}

// Password represents the password change form
type Password struct {
	CurrentPassword string `form:"currentPassword" validate:"required"`
	NewPassword     string `form:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func (Password) messages() map[string]string {
	return map[string]string{
		"currentPassword.required": "Current password required",
		"newPassword.required":     "New password required",
		"newPassword.min":          "Password should be more than 8 characters!",
		"confirmPassword.required": "Confirm password required",
		"confirmPassword.eqfield":  "Passwords do not match",
	}
}
