package repository

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	activeSchemaName    = "active_tasks.schema.json"
	completedSchemaName = "completed_tasks.schema.json"
)

var (
	schemas     map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchemas compiles the embedded schemas once
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiled := make(map[string]*jsonschema.Schema, 2)

		for _, name := range []string{activeSchemaName, completedSchemaName} {
			data, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s: %w", name, err)
				return
			}
		}

		for _, name := range []string{activeSchemaName, completedSchemaName} {
			s, err := compiler.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
		schemas = compiled
	})

	return compileErr
}

// validate checks raw JSON against the named embedded schema
func validate(name string, data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schemas[name].Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", name, err)
	}
	return nil
}
