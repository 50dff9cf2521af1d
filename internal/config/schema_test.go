// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// cueFieldNames returns the regular field names of a CUE struct definition.
func cueFieldNames(t *testing.T, def string) map[string]bool {
	t.Helper()

	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}
	val := schema.LookupPath(cue.ParsePath(def))
	if val.Err() != nil {
		t.Fatalf("failed to lookup CUE definition %s: %v", def, val.Err())
	}

	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}

	fields := make(map[string]bool)
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields[strings.TrimSuffix(sel.String(), "?")] = true
	}
	return fields
}

// goFieldNames returns the json tag names of a struct type.
func goFieldNames(t *testing.T, typ reflect.Type) map[string]bool {
	t.Helper()

	fields := make(map[string]bool)
	for i := range typ.NumField() {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

func TestSchemaSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		def string
		typ reflect.Type
	}{
		{"#Config", reflect.TypeFor[Config]()},
		{"#UIConfig", reflect.TypeFor[UIConfig]()},
		{"#LogConfig", reflect.TypeFor[LogConfig]()},
		{"#OutputConfig", reflect.TypeFor[OutputConfig]()},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			t.Parallel()

			cueFields := cueFieldNames(t, tt.def)
			goFields := goFieldNames(t, tt.typ)
			for name := range cueFields {
				if !goFields[name] {
					t.Errorf("CUE field %q has no Go struct field", name)
				}
			}
			for name := range goFields {
				if !cueFields[name] {
					t.Errorf("Go field %q is missing from the CUE schema", name)
				}
			}
		})
	}
}
