// Package fixture loads mid-level IR bodies from YAML descriptions.
//
// Fixtures exist so tests and the debug CLI can state an input body
// declaratively instead of assembling it statement by statement in Go. The
// loader resolves field projection types itself, so a fixture writes
// {field: 1} and never repeats type information the locals already carry.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ouz-a/tern/internal/mir"
	"github.com/ouz-a/tern/internal/types"
)

// LoadBody reads and parses a body fixture file.
func LoadBody(path string) (*mir.Body, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	body, err := ParseBody(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return body, nil
}

// ParseBody parses a YAML body description.
func ParseBody(data []byte) (*mir.Body, error) {
	var doc bodyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buildBody(&doc)
}

type bodyDoc struct {
	Name   string     `yaml:"name"`
	Args   int        `yaml:"args"`
	Locals []localDoc `yaml:"locals"`
	Blocks []blockDoc `yaml:"blocks"`
}

type localDoc struct {
	Type any    `yaml:"type"`
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
}

type blockDoc struct {
	Stmts []any `yaml:"stmts"`
	Term  any   `yaml:"term"`
}

func buildBody(doc *bodyDoc) (*mir.Body, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("body has no name")
	}
	if len(doc.Locals) == 0 {
		return nil, fmt.Errorf("body %q declares no locals (slot 0 is the return place)", doc.Name)
	}

	body := &mir.Body{Name: doc.Name, ArgCount: doc.Args}

	for i, ld := range doc.Locals {
		ty, err := parseType(ld.Type)
		if err != nil {
			return nil, fmt.Errorf("local _%d: %w", i, err)
		}
		kind, err := parseLocalKind(ld.Kind)
		if err != nil {
			return nil, fmt.Errorf("local _%d: %w", i, err)
		}
		body.Locals = append(body.Locals, mir.LocalDecl{Type: ty, Kind: kind, Name: ld.Name})
	}

	for bi, bd := range doc.Blocks {
		block := body.NewBlock()
		for si, sd := range bd.Stmts {
			stmt, err := parseStmt(body, sd)
			if err != nil {
				return nil, fmt.Errorf("block b%d stmt %d: %w", bi, si, err)
			}
			block.Stmts = append(block.Stmts, stmt)
		}
		term, err := parseTerm(body, bd.Term)
		if err != nil {
			return nil, fmt.Errorf("block b%d terminator: %w", bi, err)
		}
		block.Term = term
	}

	return body, nil
}

func parseLocalKind(s string) (mir.LocalKind, error) {
	switch s {
	case "", "temp":
		return mir.LocalTemp, nil
	case "user":
		return mir.LocalUser, nil
	case "arg":
		return mir.LocalArg, nil
	case "deref-temp":
		return mir.LocalDerefTemp, nil
	default:
		return 0, fmt.Errorf("unknown local kind %q", s)
	}
}

// parseType decodes a structural type description: a primitive name, or a
// single-key map ptr/tuple/array/slice.
func parseType(v any) (types.SemType, error) {
	switch t := v.(type) {
	case nil:
		return types.TypeVoid, nil
	case string:
		return primitiveType(t)
	case map[string]any:
		if len(t) != 1 {
			return nil, fmt.Errorf("type map must have exactly one key, got %d", len(t))
		}
		for key, val := range t {
			switch key {
			case "ptr":
				elem, err := parseType(val)
				if err != nil {
					return nil, err
				}
				return types.NewPointer(elem), nil
			case "tuple":
				items, ok := val.([]any)
				if !ok {
					return nil, fmt.Errorf("tuple wants a list of types")
				}
				elems := make([]types.SemType, 0, len(items))
				for _, it := range items {
					e, err := parseType(it)
					if err != nil {
						return nil, err
					}
					elems = append(elems, e)
				}
				return types.NewTuple(elems...), nil
			case "array":
				m, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("array wants {elem, len}")
				}
				elem, err := parseType(m["elem"])
				if err != nil {
					return nil, err
				}
				length, ok := m["len"].(int)
				if !ok {
					return nil, fmt.Errorf("array wants an integer len")
				}
				return types.NewArray(elem, length), nil
			case "slice":
				elem, err := parseType(val)
				if err != nil {
					return nil, err
				}
				return types.NewSlice(elem), nil
			default:
				return nil, fmt.Errorf("unknown type constructor %q", key)
			}
		}
	}
	return nil, fmt.Errorf("cannot parse type from %T", v)
}

func primitiveType(name string) (types.SemType, error) {
	switch name {
	case "i8":
		return types.TypeI8, nil
	case "i16":
		return types.TypeI16, nil
	case "i32":
		return types.TypeI32, nil
	case "i64":
		return types.TypeI64, nil
	case "u8":
		return types.TypeU8, nil
	case "u16":
		return types.TypeU16, nil
	case "u32":
		return types.TypeU32, nil
	case "u64":
		return types.TypeU64, nil
	case "f32":
		return types.TypeF32, nil
	case "f64":
		return types.TypeF64, nil
	case "str":
		return types.TypeString, nil
	case "bool":
		return types.TypeBool, nil
	case "void":
		return types.TypeVoid, nil
	default:
		return nil, fmt.Errorf("unknown primitive type %q", name)
	}
}
