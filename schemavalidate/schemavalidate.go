// Package schemavalidate adapts github.com/santhosh-tekuri/jsonschema/v6 to the
// proxy.Validator interface. Schemas default to draft 2020-12.
package schemavalidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/prognoshealth/apigwutils/proxy"
)

const inlineSchemaURL = "request-schema.json"

// An Issue is a schema violation at an instance location.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// Validator implements proxy.Validator[interface{}].
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the json schema document in schemaJSON.
func New(schemaJSON []byte) (*Validator, error) {
	return compile(inlineSchemaURL, schemaJSON)
}

// NewFromFile compiles the json schema document stored at path.
func NewFromFile(path string) (*Validator, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading schema %q", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed resolving schema %q", path)
	}

	return compile(abs, b)
}

func compile(url string, schemaJSON []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, errors.Wrapf(err, "failed decoding schema %q", url)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)

	if err := c.AddResource(url, doc); err != nil {
		return nil, errors.Wrapf(err, "failed adding schema %q", url)
	}

	schema, err := c.Compile(url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed compiling schema %q", url)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks value against the schema. The value is normalized through
// json first, so maps of strings and structs are checked as their json form,
// and that normalized form is returned. Violations are reported as a
// *proxy.ValidationError with []Issue details sorted by location.
func (v *Validator) Validate(value interface{}) (interface{}, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrapf(err, "failed encoding %T for validation", value)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "failed decoding instance")
	}

	if err := v.schema.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return nil, errors.Wrap(err, "failed validating instance")
		}

		issues := collect(verr)
		return nil, proxy.NewValidationError(describe(issues), issues)
	}

	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Wrap(err, "failed decoding instance")
	}

	return out, nil
}

func collect(verr *jsonschema.ValidationError) []Issue {
	out := verr.BasicOutput()
	if out == nil || len(out.Errors) == 0 {
		return []Issue{{Location: "/", Message: verr.Error()}}
	}

	issues := make([]Issue, 0, len(out.Errors))
	for _, unit := range out.Errors {
		if unit.Error == nil {
			continue
		}

		loc := unit.InstanceLocation
		if loc == "" {
			loc = "/"
		}

		issues = append(issues, Issue{Location: loc, Message: unit.Error.String()})
	}

	if len(issues) == 0 {
		return []Issue{{Location: "/", Message: verr.Error()}}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Location != issues[j].Location {
			return issues[i].Location < issues[j].Location
		}
		return issues[i].Message < issues[j].Message
	})

	return issues
}

func describe(issues []Issue) string {
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
	}

	return strings.Join(msgs, "; ")
}
