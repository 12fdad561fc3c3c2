// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// ParseJSON decodes a JSON document into a CUE value. Unlike encoding/json,
// the resulting value iterates object fields in document order.
//
// A key repeated within one object keeps the position of its first
// occurrence and the value of its last one. filename only feeds CUE's
// source positions; returned errors do not mention it.
func ParseJSON(data []byte, filename string) (cue.Value, error) {
	if err := CheckFileSize(data, DefaultMaxFileSize); err != nil {
		return cue.Value{}, err
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return cue.Value{}, syntaxError(err, filename)
	}
	mergeDuplicateKeys(expr)

	v := cuecontext.New().BuildExpr(expr)
	if v.Err() != nil {
		return cue.Value{}, FormatError(v.Err())
	}
	return v, nil
}

// mergeDuplicateKeys collapses repeated keys in every object of expr so
// that CUE does not unify their values.
func mergeDuplicateKeys(expr ast.Expr) {
	switch x := expr.(type) {
	case *ast.StructLit:
		seen := make(map[string]*ast.Field, len(x.Elts))
		elts := x.Elts[:0]
		for _, decl := range x.Elts {
			field, ok := decl.(*ast.Field)
			if !ok {
				elts = append(elts, decl)
				continue
			}
			mergeDuplicateKeys(field.Value)

			name, _, err := ast.LabelName(field.Label)
			if err != nil {
				elts = append(elts, decl)
				continue
			}
			if first, dup := seen[name]; dup {
				first.Value = field.Value
				continue
			}
			seen[name] = field
			elts = append(elts, field)
		}
		x.Elts = elts
	case *ast.ListLit:
		for _, elem := range x.Elts {
			mergeDuplicateKeys(elem)
		}
	}
}

// DecodeWithSchema compiles a CUE document, unifies it with the definition
// at schemaPath inside schema, validates the result and decodes it into a
// generic map. Fields absent from the document stay absent from the map so
// callers can layer the result over their own defaults.
func DecodeWithSchema(schema string, data []byte, schemaPath, filename string) (map[string]any, error) {
	if err := CheckFileSize(data, DefaultMaxFileSize); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err())
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err)
	}

	var out map[string]any
	if err := userValue.Decode(&out); err != nil {
		return nil, FormatError(err)
	}
	return out, nil
}
