package structvalidate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwutils/proxy"
)

// An Issue is a value not matching the rule set on its field.
type Issue struct {
	Field string      `json:"field"`
	Rule  string      `json:"rule"`
	Got   interface{} `json:"got"`
}

// Validator implements proxy.Validator[T].
type Validator[T any] struct {
	valid *v10.Validate
}

// New returns a Validator decoding into T. Field names in issues are taken from
// the json tags of T.
func New[T any]() *Validator[T] {
	valid := v10.New(v10.WithRequiredStructEnabled())
	valid.RegisterTagNameFunc(jsonTagName)

	return &Validator[T]{valid: valid}
}

// Engine returns the underlying validator, for registering custom rules.
func (v *Validator[T]) Engine() *v10.Validate {
	return v.valid
}

// Validate decodes value into a T and checks its struct tags. Values that do
// not decode into T or break a rule are reported as a *proxy.ValidationError
// with []Issue details.
func (v *Validator[T]) Validate(value interface{}) (T, error) {
	var out T

	b, err := json.Marshal(value)
	if err != nil {
		return out, errors.Wrapf(err, "failed encoding %T for validation", value)
	}

	if err := json.Unmarshal(b, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			issue := Issue{Field: typeErr.Field, Rule: "type=" + typeErr.Type.String(), Got: typeErr.Value}
			return out, proxy.NewValidationError(describe([]Issue{issue}), []Issue{issue})
		}

		return out, errors.Wrapf(err, "failed decoding into %T", out)
	}

	if err := v.valid.Struct(&out); err != nil {
		var fieldErrs v10.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return out, errors.Wrapf(err, "failed validating %T", out)
		}

		issues := translate(fieldErrs)
		return out, proxy.NewValidationError(describe(issues), issues)
	}

	return out, nil
}

func translate(fieldErrs v10.ValidationErrors) []Issue {
	issues := make([]Issue, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		// drop the struct name leading the namespace
		field := fe.Namespace()
		if ns := strings.SplitN(field, ".", 2); len(ns) == 2 {
			field = ns[1]
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		issues = append(issues, Issue{Field: field, Rule: rule, Got: fe.Value()})
	}

	return issues
}

func describe(issues []Issue) string {
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", issue.Field, issue.Rule))
	}

	return strings.Join(msgs, "; ")
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}
