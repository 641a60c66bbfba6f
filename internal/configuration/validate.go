package configuration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
)

const schemaURL = "settings_schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = jsonschema.CompileString(schemaURL, settingsSchema)
	})
	return compiledSchema, compileErr
}

// ValidateSettings checks a settings value against the embedded schema and
// returns one error per violation. raw may be JSON text or an already
// decoded value such as map[string]any.
//
// It reports shape problems only; an empty token is valid here.
func ValidateSettings(raw any) []error {
	s, err := schema()
	if err != nil {
		return []error{errors.Wrap(err, "compiling settings schema")}
	}

	doc, err := toJSONValue(raw)
	if err != nil {
		return []error{err}
	}

	err = s.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []error{err}
	}
	var errs []error
	collectLeaves(verr, &errs)
	return errs
}

// toJSONValue round-trips raw through encoding/json so the validator sees
// plain JSON types.
func toJSONValue(raw any) (any, error) {
	var data []byte
	switch v := raw.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "encoding settings")
		}
		data = b
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}
	return doc, nil
}

func collectLeaves(e *jsonschema.ValidationError, out *[]error) {
	if len(e.Causes) == 0 {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Errorf("%s: %s", loc, e.Message))
		return
	}
	for _, c := range e.Causes {
		collectLeaves(c, out)
	}
}
