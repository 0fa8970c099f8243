// Package validation wraps go-playground/validator with the field messages
// shown next to form inputs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validator validates tagged structs. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their form tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements the echo.Validator interface.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors maps form field names to a message such as "Email is required".
// A nil or non-validation error yields nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// Check validates i and returns its field errors. The second value is false
// for failures other than field validation (a non-struct input, for example).
func (v *Validator) Check(i interface{}) (map[string]string, error) {
	err := v.Validate(i)
	if err == nil {
		return nil, nil
	}
	if fields := FieldErrors(err); fields != nil {
		return fields, nil
	}
	return nil, err
}

func message(fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "url":
		return label + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "eqfield":
		return label + " must match " + strings.ToLower(Label(fe.Param()))
	default:
		return label + " is invalid"
	}
}

var titler = cases.Title(language.English)

// Label turns a field key ("displayName", "password_confirm", "ResetTokenExpiresAt")
// into a sentence-case label ("Display name", "Password confirm", "Reset token expires at").
func Label(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	if len(words) == 0 {
		return ""
	}
	words[0] = titler.String(words[0])
	return strings.Join(words, " ")
}
