package quizfile

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaDef pairs a schema name with its JSON definition.
type schemaDef struct {
	name       string
	definition map[string]any
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ErrInvalidFile wraps a schema violation in an input file.
type ErrInvalidFile struct {
	File string
	Err  error
}

func (e *ErrInvalidFile) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.File, e.Err)
}

func (e *ErrInvalidFile) Unwrap() error { return e.Err }

// validate checks raw JSON against a schema definition and unmarshals it
// into out on success.
func validate(schema *schemaDef, raw []byte, out any) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidFile{File: schema.name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidFile{File: schema.name, Err: err}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidFile{File: schema.name, Err: err}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *schemaDef) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(schema.definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.name, compiled)
	return compiled, nil
}
