package fixture

import (
	"fmt"

	"github.com/ouz-a/tern/internal/mir"
	"github.com/ouz-a/tern/internal/types"
)

func parseStmt(body *mir.Body, v any) (mir.Statement, error) {
	switch s := v.(type) {
	case string:
		if s == "nop" {
			return &mir.Nop{}, nil
		}
		return nil, fmt.Errorf("unknown statement %q", s)
	case map[string]any:
		if len(s) != 1 {
			return nil, fmt.Errorf("statement map must have exactly one key")
		}
		for key, val := range s {
			switch key {
			case "assign":
				m, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("assign wants {place, rvalue}")
				}
				place, err := parsePlace(body, m["place"])
				if err != nil {
					return nil, err
				}
				rv, err := parseRvalue(body, m["rvalue"])
				if err != nil {
					return nil, err
				}
				return &mir.Assign{Place: place, Rvalue: rv}, nil
			case "storage_live":
				local, err := parseLocalRef(body, val)
				if err != nil {
					return nil, err
				}
				return &mir.StorageLive{Local: local}, nil
			case "storage_dead":
				local, err := parseLocalRef(body, val)
				if err != nil {
					return nil, err
				}
				return &mir.StorageDead{Local: local}, nil
			case "debug":
				m, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("debug wants {name, place}")
				}
				name, _ := m["name"].(string)
				place, err := parsePlace(body, m["place"])
				if err != nil {
					return nil, err
				}
				return &mir.DebugRef{Name: name, Place: place}, nil
			default:
				return nil, fmt.Errorf("unknown statement kind %q", key)
			}
		}
	}
	return nil, fmt.Errorf("cannot parse statement from %T", v)
}

func parseTerm(body *mir.Body, v any) (mir.Terminator, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("block has no terminator")
	case string:
		switch t {
		case "return":
			return &mir.Return{}, nil
		case "unreachable":
			return &mir.Unreachable{}, nil
		}
		return nil, fmt.Errorf("unknown terminator %q", t)
	case map[string]any:
		if len(t) != 1 {
			return nil, fmt.Errorf("terminator map must have exactly one key")
		}
		for key, val := range t {
			switch key {
			case "goto":
				target, ok := val.(int)
				if !ok {
					return nil, fmt.Errorf("goto wants a block index")
				}
				return &mir.Goto{Target: mir.BlockID(target)}, nil
			case "cond":
				m, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("cond wants {cond, then, else}")
				}
				cond, err := parseOperand(body, m["cond"])
				if err != nil {
					return nil, err
				}
				then, ok1 := m["then"].(int)
				els, ok2 := m["else"].(int)
				if !ok1 || !ok2 {
					return nil, fmt.Errorf("cond wants integer then/else block indices")
				}
				return &mir.CondGoto{Cond: cond, Then: mir.BlockID(then), Else: mir.BlockID(els)}, nil
			case "call":
				m, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("call wants {func, args, dest, target}")
				}
				fn, _ := m["func"].(string)
				var args []mir.Operand
				if raw, ok := m["args"].([]any); ok {
					for _, a := range raw {
						op, err := parseOperand(body, a)
						if err != nil {
							return nil, err
						}
						args = append(args, op)
					}
				}
				dest, err := parsePlace(body, m["dest"])
				if err != nil {
					return nil, err
				}
				target, ok := m["target"].(int)
				if !ok {
					return nil, fmt.Errorf("call wants an integer target block index")
				}
				return &mir.Call{Func: fn, Args: args, Dest: dest, Target: mir.BlockID(target)}, nil
			case "drop":
				m, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("drop wants {place, target}")
				}
				place, err := parsePlace(body, m["place"])
				if err != nil {
					return nil, err
				}
				target, ok := m["target"].(int)
				if !ok {
					return nil, fmt.Errorf("drop wants an integer target block index")
				}
				return &mir.Drop{Place: place, Target: mir.BlockID(target)}, nil
			default:
				return nil, fmt.Errorf("unknown terminator kind %q", key)
			}
		}
	}
	return nil, fmt.Errorf("cannot parse terminator from %T", v)
}

func parseRvalue(body *mir.Body, v any) (mir.Rvalue, error) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return nil, fmt.Errorf("rvalue must be a single-key map")
	}
	for key, val := range m {
		switch key {
		case "use":
			op, err := parseOperand(body, val)
			if err != nil {
				return nil, err
			}
			return &mir.Use{X: op}, nil
		case "copy_for_deref":
			place, err := parsePlace(body, val)
			if err != nil {
				return nil, err
			}
			return &mir.CopyForDeref{Place: place}, nil
		case "ref":
			place, err := parsePlace(body, val)
			if err != nil {
				return nil, err
			}
			return &mir.Ref{Place: place}, nil
		case "binary":
			bm, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("binary wants {op, left, right}")
			}
			op, _ := bm["op"].(string)
			left, err := parseOperand(body, bm["left"])
			if err != nil {
				return nil, err
			}
			right, err := parseOperand(body, bm["right"])
			if err != nil {
				return nil, err
			}
			return &mir.BinaryOp{Op: mir.BinOp(op), Left: left, Right: right}, nil
		default:
			return nil, fmt.Errorf("unknown rvalue kind %q", key)
		}
	}
	return nil, fmt.Errorf("empty rvalue")
}

func parseOperand(body *mir.Body, v any) (mir.Operand, error) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return mir.Operand{}, fmt.Errorf("operand must be a single-key map")
	}
	for key, val := range m {
		switch key {
		case "copy":
			place, err := parsePlace(body, val)
			if err != nil {
				return mir.Operand{}, err
			}
			return mir.CopyOf(place), nil
		case "move":
			place, err := parsePlace(body, val)
			if err != nil {
				return mir.Operand{}, err
			}
			return mir.MoveOf(place), nil
		case "const":
			cm, ok := val.(map[string]any)
			if !ok {
				return mir.Operand{}, fmt.Errorf("const wants {type, value}")
			}
			ty, err := parseType(cm["type"])
			if err != nil {
				return mir.Operand{}, err
			}
			return mir.ConstOf(ty, fmt.Sprintf("%v", cm["value"])), nil
		default:
			return mir.Operand{}, fmt.Errorf("unknown operand kind %q", key)
		}
	}
	return mir.Operand{}, fmt.Errorf("empty operand")
}

// parsePlace decodes {local: N, proj: [...]} and resolves the type carried
// by each field projection from the base local's declared type.
func parsePlace(body *mir.Body, v any) (mir.Place, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return mir.Place{}, fmt.Errorf("place must be a map, got %T", v)
	}
	local, err := parseLocalRef(body, m["local"])
	if err != nil {
		return mir.Place{}, err
	}

	place := mir.PlaceOf(local)
	raw, ok := m["proj"].([]any)
	if !ok {
		if m["proj"] == nil {
			return place, nil
		}
		return mir.Place{}, fmt.Errorf("proj must be a list")
	}

	ty := body.Locals[local].Type
	variant := -1

	for _, rp := range raw {
		elem, nextTy, nextVariant, err := parseProjElem(rp, ty, variant)
		if err != nil {
			return mir.Place{}, fmt.Errorf("place %s: %w", place, err)
		}
		place = place.Extend(elem)
		ty = nextTy
		variant = nextVariant
	}

	return place, nil
}

func parseProjElem(v any, ty types.SemType, variant int) (mir.ProjectionElem, types.SemType, int, error) {
	switch p := v.(type) {
	case string:
		if p == "deref" {
			pointee, ok := types.Pointee(ty)
			if !ok {
				return nil, nil, 0, fmt.Errorf("deref of non-pointer type %s", ty)
			}
			return mir.DerefElem{}, pointee, -1, nil
		}
		return nil, nil, 0, fmt.Errorf("unknown projection %q", p)
	case map[string]any:
		if len(p) != 1 {
			return nil, nil, 0, fmt.Errorf("projection map must have exactly one key")
		}
		for key, val := range p {
			switch key {
			case "field":
				index, ok := val.(int)
				if !ok {
					return nil, nil, 0, fmt.Errorf("field wants an integer index")
				}
				fieldTy, err := fieldTypeOf(ty, variant, index)
				if err != nil {
					return nil, nil, 0, err
				}
				return mir.FieldElem{Index: index, Type: fieldTy}, fieldTy, -1, nil
			case "index":
				local, ok := val.(int)
				if !ok {
					return nil, nil, 0, fmt.Errorf("index wants an integer local id")
				}
				arr, ok := ty.(*types.ArrayType)
				if !ok {
					return nil, nil, 0, fmt.Errorf("index of non-array type %s", ty)
				}
				return mir.IndexElem{Local: mir.LocalID(local)}, arr.Elem, -1, nil
			case "downcast":
				idx, ok := val.(int)
				if !ok {
					return nil, nil, 0, fmt.Errorf("downcast wants an integer variant index")
				}
				if _, ok := ty.(*types.EnumType); !ok {
					return nil, nil, 0, fmt.Errorf("downcast of non-enum type %s", ty)
				}
				return mir.DowncastElem{Variant: idx}, ty, idx, nil
			default:
				return nil, nil, 0, fmt.Errorf("unknown projection kind %q", key)
			}
		}
	}
	return nil, nil, 0, fmt.Errorf("cannot parse projection from %T", v)
}

func fieldTypeOf(ty types.SemType, variant, index int) (types.SemType, error) {
	switch t := ty.(type) {
	case *types.TupleType:
		if index < 0 || index >= len(t.Elems) {
			return nil, fmt.Errorf("field %d out of range for %s", index, ty)
		}
		return t.Elems[index], nil
	case *types.StructType:
		if index < 0 || index >= len(t.Fields) {
			return nil, fmt.Errorf("field %d out of range for %s", index, ty)
		}
		return t.Fields[index].Type, nil
	case *types.EnumType:
		if variant < 0 || variant >= len(t.Variants) {
			return nil, fmt.Errorf("enum field access without downcast on %s", ty)
		}
		fields := t.Variants[variant].Fields
		if index < 0 || index >= len(fields) {
			return nil, fmt.Errorf("field %d out of range for variant %d of %s", index, variant, ty)
		}
		return fields[index], nil
	default:
		return nil, fmt.Errorf("field projection over non-aggregate type %s", ty)
	}
}

func parseLocalRef(body *mir.Body, v any) (mir.LocalID, error) {
	id, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("local reference must be an integer, got %T", v)
	}
	if id < 0 || id >= len(body.Locals) {
		return 0, fmt.Errorf("local _%d out of range (body has %d locals)", id, len(body.Locals))
	}
	return mir.LocalID(id), nil
}
