// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// ParseResult holds a decoded document.
type ParseResult[T any] struct {
	Value *T
	// Unified is the document unified with its schema definition.
	Unified cue.Value
}

// ParseAndDecode checks data against the schema definition at schemaPath
// (e.g. "#Info") and decodes it into T.
//
// Problems with data are returned as *DecodeError, or wrap ErrFileTooLarge.
// A schema that does not compile or lacks schemaPath is an internal error.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.filename == "" {
		o.filename = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	def, err := lookupDefinition(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	doc, err := compileData(ctx, data, o.filename, o.format)
	if err != nil {
		return nil, FormatError(err, o.filename)
	}

	unified := def.Unify(doc)
	value, err := decode[T](unified, o.concrete)
	if err != nil {
		return nil, FormatError(err, o.filename)
	}
	return &ParseResult[T]{Value: value, Unified: unified}, nil
}

// ParseAndDecodeString is ParseAndDecode for a schema held in a string,
// typically an embedded .cue file.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

func lookupDefinition(ctx *cue.Context, schema []byte, path string) (cue.Value, error) {
	compiled := ctx.CompileBytes(schema)
	if err := compiled.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	def := compiled.LookupPath(cue.ParsePath(path))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", path, err)
	}
	return def, nil
}

func decode[T any](v cue.Value, concrete bool) (*T, error) {
	if err := v.Validate(cue.Concrete(concrete)); err != nil {
		return nil, err
	}
	var out T
	if err := v.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// compileData builds data as CUE source or extracts it as strict JSON.
func compileData(ctx *cue.Context, data []byte, filename string, format Format) (cue.Value, error) {
	var v cue.Value
	switch format {
	case FormatCUE:
		v = ctx.CompileBytes(data, cue.Filename(filename))
	case FormatJSON:
		expr, err := cuejson.Extract(filename, data)
		if err != nil {
			return cue.Value{}, err
		}
		v = ctx.BuildExpr(expr, cue.Filename(filename))
	default:
		return cue.Value{}, fmt.Errorf("unsupported data format %q", format)
	}
	return v, v.Err()
}
