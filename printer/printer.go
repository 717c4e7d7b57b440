// Package printer renders a CompilationUnit back to SPARC assembly text.
// Output is deterministic and exists to round-trip the optimizer's
// changes, not to reproduce a particular house style; spec.md explicitly
// scopes printer cosmetics beyond what the optimizer's tests need out of
// this package's surface.
//
// Shaped after this codebase's tools.Formatter: an options struct, a
// Printer holding a strings.Builder, and one Print method per node kind.
package printer

import (
	"strconv"
	"strings"

	"github.com/dymk/sparc-optim/ast"
)

// Options controls the few cosmetic knobs the optimizer's tests actually
// rely on.
type Options struct {
	BlankLineBeforeLabels bool   // insert a blank line before each label decl (default true)
	OperandSeparator      string // written between an instruction's operands (default ",\t")
}

// DefaultOptions returns the printer's normal behavior.
func DefaultOptions() Options {
	return Options{BlankLineBeforeLabels: true, OperandSeparator: ",\t"}
}

// Printer renders a CompilationUnit to text.
type Printer struct {
	opts Options
	out  strings.Builder
}

// New creates a Printer with the given options.
func New(opts Options) *Printer {
	return &Printer{opts: opts}
}

// Print renders unit to text using the default options.
func Print(unit *ast.CompilationUnit) string {
	return New(DefaultOptions()).Print(unit)
}

// Print renders unit to text.
func (p *Printer) Print(unit *ast.CompilationUnit) string {
	p.out.Reset()
	first := true
	for _, n := range unit.Nodes() {
		switch v := n.(type) {
		case *ast.Comment:
			p.out.WriteString(v.Text)
			p.out.WriteByte('\n')
		case *ast.Directive:
			p.out.WriteByte('\t')
			p.out.WriteString(v.Name)
			if v.Arg != nil {
				p.out.WriteByte(' ')
				p.out.WriteString(renderExpr(v.Arg))
			}
			p.out.WriteByte('\n')
		case *ast.LabelDecl:
			if p.opts.BlankLineBeforeLabels && !first {
				p.out.WriteByte('\n')
			}
			p.out.WriteString(v.Name)
			p.out.WriteString(":\n")
		case *ast.ConstantDecl:
			p.out.WriteByte('\t')
			p.out.WriteString(v.Name)
			p.out.WriteString(" = ")
			p.out.WriteString(renderExpr(v.Value))
			p.out.WriteByte('\n')
		case *ast.Instruction:
			p.writeInstruction(v)
		case *ast.Newline:
			p.out.WriteByte('\n')
		case *ast.Eof:
			// terminator carries no text
		}
		first = false
	}
	return p.out.String()
}

func (p *Printer) writeInstruction(inst *ast.Instruction) {
	p.out.WriteByte('\t')
	p.out.WriteString(inst.Op)
	if inst.Annulled {
		p.out.WriteString(",a")
	}
	if len(inst.Args) > 0 {
		p.out.WriteByte('\t')
		sep := p.opts.OperandSeparator
		if sep == "" {
			sep = ",\t"
		}
		for i, arg := range inst.Args {
			if i > 0 {
				p.out.WriteString(sep)
			}
			p.out.WriteString(renderExpr(arg))
		}
	}
	p.out.WriteByte('\n')
}

var binOpSymbol = map[ast.BinOpKind]string{
	ast.BinOr:  "|",
	ast.BinXor: "^",
	ast.BinAnd: "&",
	ast.BinAdd: "+",
	ast.BinSub: "-",
}

var directionSymbol = map[ast.Direction]string{
	ast.DirPlus:  "+",
	ast.DirMinus: "-",
}

func renderExpr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Register:
		return "%" + v.Name
	case *ast.NumLit:
		return strconv.FormatInt(v.Value, 10)
	case *ast.StrLit:
		return strconv.Quote(v.Value)
	case *ast.CharLit:
		return "'" + string(v.Value) + "'"
	case *ast.LabelRef:
		return v.Name
	case *ast.ConstantRef:
		return v.Name
	case *ast.BinOp:
		return renderExpr(v.Left) + binOpSymbol[v.Op] + renderExpr(v.Right)
	case *ast.PreUnOp:
		return "-" + renderExpr(v.Operand)
	case *ast.BindParens:
		return "(" + renderExpr(v.Inner) + ")"
	case *ast.Address:
		var sb strings.Builder
		sb.WriteByte('[')
		sb.WriteString(renderExpr(v.Base))
		if v.Direction != ast.NoDirection {
			sb.WriteString(directionSymbol[v.Direction])
			sb.WriteString(renderExpr(v.Offset))
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		return ""
	}
}
