package ast

import "github.com/dymk/sparc-optim/token"

// Comment is a standalone `!` or `/* */` comment preserved verbatim.
type Comment struct {
	nodeLink
	Text string
	Pos  token.Location
}

func (*Comment) rootNode()            {}
func (c *Comment) Loc() token.Location { return c.Pos }

// Directive is one of .section, .global, .align. Arg is nil for .align,
// which spec.md §4.2/§9 leaves unimplemented as an open question (parsing
// its argument is a syntax error).
type Directive struct {
	nodeLink
	Name string // ".section", ".global", ".align"
	Arg  Expr   // StrLit for .section, LabelRef for .global, nil for .align
	Pos  token.Location
}

func (*Directive) rootNode()              {}
func (d *Directive) Loc() token.Location { return d.Pos }

// LabelDecl declares a label at the point it appears in the root list.
type LabelDecl struct {
	nodeLink
	Name string
	Pos  token.Location
}

func (*LabelDecl) rootNode()              {}
func (l *LabelDecl) Loc() token.Location { return l.Pos }

// ConstantDecl declares a named immediate constant (`name = imm`).
type ConstantDecl struct {
	nodeLink
	Name  string
	Value Expr
	Pos   token.Location
}

func (*ConstantDecl) rootNode()              {}
func (c *ConstantDecl) Loc() token.Location { return c.Pos }

// Instruction is a single opcode with its ordered argument list. Annulled
// is only meaningful when Op names a branch opcode. The parser sets it
// when the source already spells `,a`, and the optimizer sets it on the
// branches it hoists into; the optimizer never consumes an
// already-annulled branch as input.
type Instruction struct {
	nodeLink
	Op       string
	Args     []Expr
	Annulled bool
	Pos      token.Location
}

func (*Instruction) rootNode()              {}
func (i *Instruction) Loc() token.Location { return i.Pos }

// Clone returns a shallow copy of the instruction: a new node identity with
// the same op, annul flag, and shared (immutable, post-parse) argument
// subtrees. This is the only way the optimizer ever constructs a new
// Instruction node (spec.md §3 "Lifecycle").
func (i *Instruction) Clone() *Instruction {
	return &Instruction{
		Op:       i.Op,
		Args:     i.Args, // shared; argument subtrees are immutable post-parse
		Annulled: i.Annulled,
		Pos:      i.Pos,
	}
}

// Newline is a formatting sentinel inserted by the optimizer after a
// hoisted instruction so the pretty printer renders a clean line break.
type Newline struct {
	nodeLink
}

func (*Newline) rootNode()              {}
func (*Newline) Loc() token.Location { return token.Location{} }

// Eof terminates every root list.
type Eof struct {
	nodeLink
	Pos token.Location
}

func (*Eof) rootNode()              {}
func (e *Eof) Loc() token.Location { return e.Pos }
