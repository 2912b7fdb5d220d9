// Package seed bundles the default todo list and the schema stored lists must satisfy.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todo"
)

//go:embed todos.json
var defaultTodos []byte

//go:embed items.schema.json
var itemsSchema string

const schemaURL = "tada://items.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Items returns the bundled default list, sorted by id descending.
func Items() []model.Item {
	items, err := Decode(defaultTodos)
	if err != nil {
		panic(fmt.Sprintf("bundled todos are invalid: %v", err))
	}
	todo.SortDesc(items)
	return items
}

// Decode validates raw against the items schema and decodes it.
func Decode(raw []byte) ([]model.Item, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var items []model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

// Validate checks raw JSON against the embedded items schema.
func Validate(raw []byte) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema: %s", describe(err))
	}
	return nil
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(itemsSchema)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// describe flattens a validation error to its leaf causes.
func describe(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}
