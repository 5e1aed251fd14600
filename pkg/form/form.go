// Package form implements the validation engine and the submission
// workflow shared by the account and product forms.
package form

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("form has validation errors")

type (
	Values map[string]string
	Errors map[string]string
)

// A Rule is the declarative validation of one field: a validator tag
// expression plus a human-readable message per failing tag.
type Rule struct {
	Tag      string
	Messages map[string]string
}

type Rules map[string]Rule

var validate = validator.New()

// Validate is a pure function of values: it returns a message for
// every field failing its rule and omits entries for valid fields.
// An empty result signals the values may be submitted.
func Validate(values Values, rules Rules) Errors {
	errs := Errors{}
	for field, rule := range rules {
		if msg := checkField(values[field], rule); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// ValidateField validates a single field against its rule, for
// validate-on-blur. Fields without a rule are always valid.
func ValidateField(values Values, rules Rules, field string) (string, bool) {
	rule, ok := rules[field]
	if !ok {
		return "", true
	}
	msg := checkField(values[field], rule)
	return msg, msg == ""
}

func checkField(value string, rule Rule) string {
	err := validate.Var(value, rule.Tag)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := rule.Messages[verrs[0].Tag()]; ok {
			return msg
		}
	}
	return "valor no válido"
}

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	StateError
)

type SubmitFunc func(ctx context.Context, values Values) error

// A Form binds field edits to state, validates on blur and on submit,
// and invokes the caller-supplied action once all fields pass.
type Form struct {
	values    Values
	errors    Errors
	rules     Rules
	submit    SubmitFunc
	state     State
	submitErr error
}

func New(initial Values, rules Rules, submit SubmitFunc) *Form {
	values := Values{}
	for k, v := range initial {
		values[k] = v
	}
	return &Form{
		values: values,
		errors: Errors{},
		rules:  rules,
		submit: submit,
	}
}

// Change records a new field value. The field is not re-validated
// until blur, so no error flickers while the user is typing.
func (f *Form) Change(field, value string) {
	f.values[field] = value
	f.state = StateEditing
}

// Blur validates the single blurred field and merges the outcome into
// the error set.
func (f *Form) Blur(field string) {
	msg, ok := ValidateField(f.values, f.rules, field)
	if ok {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

// Submit validates every field. With any error present it aborts and
// leaves all errors visible; otherwise it runs the submit action. An
// action failure is captured in SubmitErr, nothing is retried and the
// values are not rolled back.
func (f *Form) Submit(ctx context.Context) error {
	f.errors = Validate(f.values, f.rules)
	if len(f.errors) > 0 {
		f.state = StateEditing
		return ErrInvalid
	}

	f.state = StateSubmitting
	if err := f.submit(ctx, f.Values()); err != nil {
		f.submitErr = err
		f.state = StateError
		return err
	}

	f.submitErr = nil
	f.state = StateIdle
	return nil
}

func (f *Form) Value(field string) string {
	return f.values[field]
}

func (f *Form) Values() Values {
	values := Values{}
	for k, v := range f.values {
		values[k] = v
	}
	return values
}

func (f *Form) Errors() Errors {
	errs := Errors{}
	for k, v := range f.errors {
		errs[k] = v
	}
	return errs
}

func (f *Form) State() State {
	return f.state
}

func (f *Form) SubmitErr() error {
	return f.submitErr
}
