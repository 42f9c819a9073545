package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their form key rather than the Go field name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("form")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// LoginForm is the sign-in form
type LoginForm struct {
	Email    string `form:"email" label:"Email" validate:"required,email"`
	Password string `form:"password" label:"Password" validate:"required,min=6"`
}

// RegisterForm is the account creation form
type RegisterForm struct {
	FirstName string `form:"first_name" label:"First Name" validate:"required,min=3"`
	LastName  string `form:"last_name" label:"Last Name" validate:"required,min=3"`
	Email     string `form:"email" label:"Email" validate:"required,email"`
	Password  string `form:"password" label:"Password" validate:"required,min=6"`
}

// ValidationErrors maps a form key to its message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v[k])
	}
	return strings.Join(msgs, "; ")
}

// ValidateForm checks a form struct and returns ValidationErrors, or nil when valid
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := ValidationErrors{}
	for _, fe := range verrs {
		label := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		out[fe.Field()] = fieldMessage(label, fe.Tag(), fe.Param())
	}
	return out
}

// fieldMessage renders one failed rule
func fieldMessage(label, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is not allowed to be empty", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email", label)
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", label, param)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
