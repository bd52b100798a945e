// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema publishes JSON Schemas for the artifacts the rendering
// layer consumes.
package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/pdiddy/archive-network/pkg/types"
)

// contracts maps a contract name to a zero value of its document type.
var contracts = map[string]any{
	"graph":     types.Graph{},
	"adjacency": types.Matrix{},
	"members":   []types.Member{},
}

// Names returns the known contract names, sorted.
func Names() []string {
	out := make([]string, 0, len(contracts))
	for name := range contracts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// For returns the JSON Schema of the named contract.
func For(name string) (*jsonschema.Schema, error) {
	v, ok := contracts[name]
	if !ok {
		return nil, fmt.Errorf("unknown contract %q: use one of %v", name, Names())
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := reflector.ReflectFromType(reflect.TypeOf(v))
	s.Title = name
	return s, nil
}
