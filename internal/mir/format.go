package mir

import (
	"fmt"
	"os"
	"strings"

	"github.com/ouz-a/tern/internal/types"
)

// FormatBody returns a readable text representation of a body.
func FormatBody(body *Body) string {
	if body == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "body %s {\n", body.Name)

	for id, decl := range body.Locals {
		fmt.Fprintf(&b, "  _%d: %s", id, formatType(decl.Type))
		if decl.Kind != LocalTemp || decl.Name != "" {
			fmt.Fprintf(&b, " // %s", decl.Kind)
			if decl.Name != "" {
				fmt.Fprintf(&b, " %s", decl.Name)
			}
		}
		b.WriteString("\n")
	}

	for _, block := range body.Blocks {
		writeBlock(&b, block)
	}

	b.WriteString("}\n")
	return b.String()
}

// WriteBodyFile writes the formatted body to disk, for debug dumps.
func WriteBodyFile(body *Body, path string) error {
	if body == nil || path == "" {
		return nil
	}
	return os.WriteFile(path, []byte(FormatBody(body)), 0644)
}

func writeBlock(b *strings.Builder, block *BasicBlock) {
	if block == nil {
		return
	}

	fmt.Fprintf(b, "  block b%d:\n", block.ID)

	for _, stmt := range block.Stmts {
		fmt.Fprintf(b, "    %s\n", FormatStmt(stmt))
	}

	if block.Term != nil {
		fmt.Fprintf(b, "    %s\n", FormatTerm(block.Term))
	} else {
		b.WriteString("    term <nil>\n")
	}
}

// FormatStmt renders one statement in dump syntax.
func FormatStmt(stmt Statement) string {
	switch s := stmt.(type) {
	case *Assign:
		return fmt.Sprintf("%s = %s", formatPlace(s.Place), formatRvalue(s.Rvalue))
	case *StorageLive:
		return fmt.Sprintf("StorageLive(_%d)", s.Local)
	case *StorageDead:
		return fmt.Sprintf("StorageDead(_%d)", s.Local)
	case *Nop:
		return "nop"
	case *DebugRef:
		return fmt.Sprintf("debug %s => %s", s.Name, formatPlace(s.Place))
	default:
		return "stmt <unknown>"
	}
}

// FormatTerm renders one terminator in dump syntax.
func FormatTerm(term Terminator) string {
	switch t := term.(type) {
	case *Return:
		return "return"
	case *Goto:
		return fmt.Sprintf("goto b%d", t.Target)
	case *CondGoto:
		return fmt.Sprintf("goto_if %s, b%d, b%d", formatOperand(t.Cond), t.Then, t.Else)
	case *Call:
		args := make([]string, 0, len(t.Args))
		for _, a := range t.Args {
			args = append(args, formatOperand(a))
		}
		return fmt.Sprintf("%s = call %s(%s) -> b%d", formatPlace(t.Dest), t.Func, strings.Join(args, ", "), t.Target)
	case *Drop:
		return fmt.Sprintf("drop %s -> b%d", formatPlace(t.Place), t.Target)
	case *Unreachable:
		return "unreachable"
	default:
		return "term <unknown>"
	}
}

func formatRvalue(rv Rvalue) string {
	switch r := rv.(type) {
	case *Use:
		return formatOperand(r.X)
	case *CopyForDeref:
		return fmt.Sprintf("CopyForDeref(%s)", formatPlace(r.Place))
	case *Ref:
		return fmt.Sprintf("&%s", formatPlace(r.Place))
	case *BinaryOp:
		return fmt.Sprintf("%s(%s, %s)", r.Op, formatOperand(r.Left), formatOperand(r.Right))
	default:
		return "rvalue <unknown>"
	}
}

func formatOperand(op Operand) string {
	switch op.Kind {
	case OperandCopy:
		return fmt.Sprintf("copy %s", formatPlace(op.Place))
	case OperandMove:
		return fmt.Sprintf("move %s", formatPlace(op.Place))
	case OperandConst:
		return fmt.Sprintf("const %s %s", formatType(op.Type), op.Value)
	default:
		return "operand <unknown>"
	}
}

func formatPlace(p Place) string {
	s := fmt.Sprintf("_%d", p.Local)
	for _, elem := range p.Projection {
		switch e := elem.(type) {
		case DerefElem:
			s = fmt.Sprintf("(*%s)", s)
		case FieldElem:
			s = fmt.Sprintf("%s.%d", s, e.Index)
		case IndexElem:
			s = fmt.Sprintf("%s[_%d]", s, e.Local)
		case ConstantIndexElem:
			if e.FromEnd {
				s = fmt.Sprintf("%s[-%d of %d]", s, e.Offset, e.MinLength)
			} else {
				s = fmt.Sprintf("%s[%d of %d]", s, e.Offset, e.MinLength)
			}
		case SubsliceElem:
			if e.FromEnd {
				s = fmt.Sprintf("%s[%d:-%d]", s, e.From, e.To)
			} else {
				s = fmt.Sprintf("%s[%d:%d]", s, e.From, e.To)
			}
		case DowncastElem:
			s = fmt.Sprintf("(%s as #%d)", s, e.Variant)
		default:
			s = s + ".<unknown>"
		}
	}
	return s
}

func formatType(t types.SemType) string {
	if t == nil {
		return "void"
	}
	return t.String()
}
