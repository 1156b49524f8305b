package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	tableNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_]+\s?\d+$`)
	phonePattern     = regexp.MustCompile(`^\+\d{11}$`)

	registerOnce sync.Once
	registerErr  error
)

var tagMessages = map[string]string{
	"tablename": "Wrong table name format. Right format example: 'Table 1'",
	"phone":     "Wrong phone number format. Right format example: '+79991112233'",
}

func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// RegisterValidators adds the `tablename` and `phone` tags to gin's binding engine.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("tablename", func(fl validator.FieldLevel) bool {
			return ValidTableName(fl.Field().String())
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return ValidPhone(fl.Field().String())
		})
	})
	return registerErr
}

// ValidationError carries readable messages for failed binding tags.
type ValidationError struct {
	Messages []string
	errs     validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.errs
}

// BindingError rewrites validator failures into readable messages.
// Other errors are returned untouched.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := tagMessages[fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gtfield":
			msgs = append(msgs, fmt.Sprintf("%s must be after %s", fe.Field(), fe.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return &ValidationError{Messages: msgs, errs: verrs}
}
