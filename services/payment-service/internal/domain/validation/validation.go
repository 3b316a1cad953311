// Package validation evaluates the declarative `validate` struct tags of the
// credit transfer model and reports every violated rule at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalid is matched by every Violations error.
var ErrInvalid = errors.New("validation failed")

// Violation is a single broken rule attached to a field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the violation as a sentence, e.g. "Name is too long (maximum is 70 characters)".
func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + " " + v.Message
}

// Violations is the aggregate result of validating a record.
type Violations []Violation

// Error joins all violation sentences.
func (vs Violations) Error() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.String()
	}
	return strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrInvalid) hold for any Violations.
func (vs Violations) Is(target error) bool {
	return target == ErrInvalid
}

// Err returns nil when there are no violations.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// Prefix qualifies every field with the name of the enclosing field.
func (vs Violations) Prefix(field string) Violations {
	out := make(Violations, len(vs))
	for i, v := range vs {
		out[i] = Violation{Field: field + "." + v.Field, Message: v.Message}
	}
	return out
}

// Add appends a violation built from a field and a message.
func (vs *Violations) Add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}

// Fields lists the names of the violated fields in order.
func (vs Violations) Fields() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Field
	}
	return out
}

// As extracts Violations from err, if it carries any.
func As(err error) (Violations, bool) {
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared validator with the payment rules registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = newEngine()
	})
	return engine
}

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Amounts are compared as floats; decimal precision is irrelevant for > 0.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]func(string) bool{
		"iban":         ValidIBAN,
		"bic":          ValidBIC,
		"creditor_id":  ValidCreditorIdentifier,
		"debtor_id":    ValidDebtorIdentifier,
		"mandate_id":   ValidMandateIdentifier,
		"uk_sort_code": ValidUKSortCode,
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %s rule: %v", tag, err))
		}
	}
	return v
}

// Struct validates s against its `validate` tags and returns every violation.
func Struct(s any) Violations {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Violations{{Message: err.Error()}}
	}

	out := make(Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "can't be blank"
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", fe.Param())
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", fe.Param())
	case "len":
		return fmt.Sprintf("is the wrong length (should be %s characters)", fe.Param())
	case "oneof":
		return "is not included in the list"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}
