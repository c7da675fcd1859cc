package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/task-manager/internal/constants"
)

// Now is the clock used by time based rules. Tests may replace it.
var Now = time.Now

// Errors maps a field name to the messages raised for it.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], " "))
	}
	return strings.Join(parts, "; ")
}

// Add appends a message to field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge copies every message from other into e.
func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		e[field] = append(e[field], messages...)
	}
}

// Err returns nil when no field failed, so callers can `return errs.Err()`.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// As extracts field errors from err, if it carries any.
func As(err error) (Errors, bool) {
	var fieldErrs Errors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}

var validate = New()

// New returns a validator with the custom rules registered, reading `validate` tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	Register(v)
	return v
}

// Register installs the custom rules and the field naming used in error keys.
// It is applied to our own validator and to gin's binding engine.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("deadline_lead", hasDeadlineLead)
	_ = v.RegisterValidation("username", isUsername)
}

// Struct validates s and reports failures as Errors.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate turns validator failures into field errors. Other errors pass through.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := Errors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "eqfield":
		return "The two password fields didn't match."
	case "alphaunicode":
		return humanize(fe.Field()) + " must contain only letters."
	case "deadline_lead":
		return fmt.Sprintf("Deadline must be at least %d minutes from now.", int(constants.MinDeadlineLead.Minutes()))
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

// fieldName keys errors by form or json name. Foreign keys are reported
// under the form field name, so project_id becomes project.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return strings.TrimSuffix(name, "_id")
		}
	}
	return f.Name
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// DeadlineOK reports whether deadline is at least MinDeadlineLead ahead of Now.
func DeadlineOK(deadline time.Time) bool {
	return !deadline.Before(Now().Add(constants.MinDeadlineLead))
}

func hasDeadlineLead(fl validator.FieldLevel) bool {
	deadline, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return DeadlineOK(deadline)
}

func isUsername(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '_', '@', '.', '+', '-':
			continue
		}
		return false
	}
	return true
}
