// Package parser turns a token stream into a CompilationUnit: a
// recursive-descent, two-token-lookahead parser over the grammar in
// spec.md §4.2 (unit, item, directive, labelDecl, constDecl, instr,
// address, immExpr).
//
// Shaped after this codebase's hand-rolled parser.Parser: a held
// current/peek pair advanced by nextToken, one error halting the whole
// parse, and a symbol table built as declarations are seen. Label
// forward references are resolved in a single post-pass once the root
// list is complete, the same role this codebase's SymbolTable.Reference
// plays for forward branch targets.
package parser

import (
	"fmt"

	"github.com/dymk/sparc-optim/ast"
	"github.com/dymk/sparc-optim/diagnose"
	"github.com/dymk/sparc-optim/isa"
	"github.com/dymk/sparc-optim/token"
)

// Parser consumes a token.Stream and builds an ast.CompilationUnit.
type Parser struct {
	stream   *token.Stream
	filename string
	unit     *ast.CompilationUnit
	pending  []*ast.LabelRef // label references awaiting the post-pass
}

// NewParser creates a parser over input, attributing diagnostics to
// filename.
func NewParser(input, filename string) *Parser {
	lexer := token.NewLexer(input, filename)
	return &Parser{
		stream:   token.NewStream(lexer),
		filename: filename,
	}
}

// Parse runs the parser to completion, returning the built unit or the
// first diagnostic encountered (lexical, syntactic, or semantic).
func (p *Parser) Parse() (*ast.CompilationUnit, error) {
	eof := &ast.Eof{}
	p.unit = ast.NewCompilationUnit(eof)

	for {
		if err := p.checkLexErrors(); err != nil {
			return nil, err
		}
		tok := p.stream.Peek()
		if tok.Kind == token.EOF {
			eof.Pos = tok.Loc
			break
		}
		node, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		p.unit.Append(node)
	}

	p.resolveLabelReferences()
	return p.unit, nil
}

func (p *Parser) checkLexErrors() error {
	if p.stream.Errors().HasErrors() {
		d := p.stream.Errors().First()
		return d
	}
	return nil
}

func (p *Parser) fail(pos diagnose.Position, kind diagnose.Kind, format string, args ...interface{}) error {
	return diagnose.New(pos, kind, fmt.Sprintf(format, args...))
}

func (p *Parser) resolveLabelReferences() {
	for _, ref := range p.pending {
		if decl, ok := p.unit.Labels[ref.Name]; ok {
			ref.Decl = decl
		}
	}
}

// parseItem parses exactly one root-list node.
func (p *Parser) parseItem() (ast.RootNode, error) {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.Comment:
		p.stream.Advance()
		return &ast.Comment{Text: tok.Text, Pos: tok.Loc}, nil

	case token.Identifier:
		if len(tok.Text) > 0 && tok.Text[0] == '.' {
			return p.parseDirective()
		}
		switch p.stream.PeekAhead(1).Kind {
		case token.Colon:
			return p.parseLabelDecl()
		case token.Assign:
			return p.parseConstDecl()
		default:
			return p.parseInstruction()
		}

	default:
		return nil, p.fail(tok.Loc, diagnose.Syntactic, "unexpected %s, expected a directive, label, constant, or instruction", tok.Kind)
	}
}

func (p *Parser) parseDirective() (ast.RootNode, error) {
	nameTok := p.stream.Peek()
	p.stream.Advance()

	d := &ast.Directive{Name: nameTok.Text, Pos: nameTok.Loc}

	switch nameTok.Text {
	case ".align":
		// spec.md leaves .align's argument grammar unimplemented; the
		// directive itself is accepted with no argument.
		return d, nil

	case ".global":
		tok := p.stream.Peek()
		if tok.Kind != token.Identifier {
			return nil, p.fail(tok.Loc, diagnose.Syntactic, "expected a label name after .global, got %s", tok.Kind)
		}
		p.stream.Advance()
		ref := &ast.LabelRef{Name: tok.Text, Pos: tok.Loc}
		p.pending = append(p.pending, ref)
		d.Arg = ref
		return d, nil

	case ".section":
		tok := p.stream.Peek()
		if tok.Kind != token.StringLit {
			return nil, p.fail(tok.Loc, diagnose.Syntactic, "expected a string after .section, got %s", tok.Kind)
		}
		p.stream.Advance()
		d.Arg = &ast.StrLit{Value: tok.Text, Pos: tok.Loc}
		return d, nil

	default:
		return nil, p.fail(nameTok.Loc, diagnose.Syntactic, "unknown directive %q", nameTok.Text)
	}
}

func (p *Parser) parseLabelDecl() (ast.RootNode, error) {
	nameTok := p.stream.Peek()
	p.stream.Advance() // identifier
	p.stream.Advance() // ':'

	if _, exists := p.unit.Constants[nameTok.Text]; exists {
		return nil, p.fail(nameTok.Loc, diagnose.Semantic, "%q is already declared as a constant", nameTok.Text)
	}
	if prev, exists := p.unit.Labels[nameTok.Text]; exists {
		return nil, p.fail(nameTok.Loc, diagnose.Semantic, "label %q redeclared (first declared at %s)", nameTok.Text, prev.Pos)
	}

	decl := &ast.LabelDecl{Name: nameTok.Text, Pos: nameTok.Loc}
	p.unit.Labels[nameTok.Text] = decl
	return decl, nil
}

func (p *Parser) parseConstDecl() (ast.RootNode, error) {
	nameTok := p.stream.Peek()
	p.stream.Advance() // identifier
	p.stream.Advance() // '='

	if _, exists := p.unit.Labels[nameTok.Text]; exists {
		return nil, p.fail(nameTok.Loc, diagnose.Semantic, "%q is already declared as a label", nameTok.Text)
	}
	if prev, exists := p.unit.Constants[nameTok.Text]; exists {
		return nil, p.fail(nameTok.Loc, diagnose.Semantic, "constant %q redeclared (first declared at %s)", nameTok.Text, prev.Pos)
	}

	value, err := p.parseImmExpr()
	if err != nil {
		return nil, err
	}

	decl := &ast.ConstantDecl{Name: nameTok.Text, Value: value, Pos: nameTok.Loc}
	p.unit.Constants[nameTok.Text] = decl
	return decl, nil
}

func (p *Parser) parseInstruction() (ast.RootNode, error) {
	opTok := p.stream.Peek()
	p.stream.Advance()

	meta, ok := isa.Lookup(opTok.Text)
	if !ok {
		return nil, p.fail(opTok.Loc, diagnose.Syntactic, "unknown opcode %q", opTok.Text)
	}

	inst := &ast.Instruction{Op: opTok.Text, Pos: opTok.Loc}

	if meta.IsBranch && p.stream.Peek().Kind == token.Comma &&
		p.stream.PeekAhead(1).Kind == token.Identifier && p.stream.PeekAhead(1).Text == "a" {
		p.stream.Advance() // ','
		p.stream.Advance() // 'a'
		inst.Annulled = true
	}

	args := make([]ast.Expr, 0, len(meta.Schema))
	for i, kind := range meta.Schema {
		if i > 0 {
			tok := p.stream.Peek()
			if tok.Kind != token.Comma {
				return nil, p.fail(tok.Loc, diagnose.Syntactic, "expected ',' before argument %d of %q, got %s", i+1, opTok.Text, tok.Kind)
			}
			p.stream.Advance()
		}
		operand, err := p.parseOperand(kind, opTok.Text, i)
		if err != nil {
			return nil, err
		}
		args = append(args, operand)
	}
	inst.Args = args

	return inst, nil
}

func (p *Parser) parseOperand(kind isa.ArgKind, op string, index int) (ast.Expr, error) {
	switch kind {
	case isa.KindLabel:
		return p.parseLabelOperand()
	case isa.KindAddress:
		return p.parseAddress()
	case isa.KindReg:
		return p.parseRegister()
	case isa.KindImm:
		return p.parseImmExpr()
	case isa.KindReg | isa.KindImm:
		if p.stream.Peek().Kind == token.Percent {
			return p.parseRegister()
		}
		return p.parseImmExpr()
	default:
		return nil, p.fail(p.stream.Peek().Loc, diagnose.Internal, "%s: unhandled argument kind at position %d", op, index)
	}
}

func (p *Parser) parseLabelOperand() (ast.Expr, error) {
	tok := p.stream.Peek()
	if tok.Kind != token.Identifier {
		return nil, p.fail(tok.Loc, diagnose.Syntactic, "expected a label, got %s", tok.Kind)
	}
	p.stream.Advance()
	ref := &ast.LabelRef{Name: tok.Text, Pos: tok.Loc}
	p.pending = append(p.pending, ref)
	return ref, nil
}

func (p *Parser) parseRegister() (*ast.Register, error) {
	pct := p.stream.Peek()
	if pct.Kind != token.Percent {
		return nil, p.fail(pct.Loc, diagnose.Syntactic, "expected a register (starting with '%%'), got %s", pct.Kind)
	}
	p.stream.Advance()

	nameTok := p.stream.Peek()
	if nameTok.Kind != token.Identifier {
		return nil, p.fail(nameTok.Loc, diagnose.Syntactic, "expected a register name after '%%', got %s", nameTok.Kind)
	}
	p.stream.Advance()

	return &ast.Register{Name: nameTok.Text, Pos: pct.Loc}, nil
}

func (p *Parser) parseAddress() (ast.Expr, error) {
	open := p.stream.Peek()
	if open.Kind != token.OpenBracket {
		return nil, p.fail(open.Loc, diagnose.Syntactic, "expected '[', got %s", open.Kind)
	}
	p.stream.Advance()

	base, err := p.parseRegister()
	if err != nil {
		return nil, err
	}

	addr := &ast.Address{Base: base, Pos: open.Loc}

	switch p.stream.Peek().Kind {
	case token.Plus, token.Minus:
		signTok := p.stream.Peek()
		if signTok.Kind == token.Plus {
			addr.Direction = ast.DirPlus
		} else {
			addr.Direction = ast.DirMinus
		}
		p.stream.Advance()

		if p.stream.Peek().Kind == token.Percent {
			reg, err := p.parseRegister()
			if err != nil {
				return nil, err
			}
			addr.Offset = reg
		} else {
			imm, err := p.parseImmExpr()
			if err != nil {
				return nil, err
			}
			addr.Offset = imm
		}
	}

	closeTok := p.stream.Peek()
	if closeTok.Kind != token.CloseBracket {
		return nil, p.fail(closeTok.Loc, diagnose.Syntactic, "expected ']', got %s", closeTok.Kind)
	}
	p.stream.Advance()

	return addr, nil
}

// parseImmExpr is the top of the precedence chain: | then ^ then & then
// +/- (spec.md §4.2).
func (p *Parser) parseImmExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.stream.Peek().Kind == token.Pipe {
		pos := p.stream.Peek().Loc
		p.stream.Advance()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: ast.BinOr, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseXor() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.stream.Peek().Kind == token.Caret {
		pos := p.stream.Peek().Loc
		p.stream.Advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: ast.BinXor, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for p.stream.Peek().Kind == token.Ampersand {
		pos := p.stream.Peek().Loc
		p.stream.Advance()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: ast.BinAnd, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

// parseAddSub preserves the quirk documented on ast.BinOp: each level's
// first operand becomes Left, but the continuation recurses back into
// parseAddSub itself (not a left-folded accumulator), building a
// right-associative-with-swapped-children shape for chained add/sub.
func (p *Parser) parseAddSub() (ast.Expr, error) {
	left, err := p.parsePreUnary()
	if err != nil {
		return nil, err
	}

	tok := p.stream.Peek()
	if tok.Kind != token.Plus && tok.Kind != token.Minus {
		return left, nil
	}
	op := ast.BinAdd
	if tok.Kind == token.Minus {
		op = ast.BinSub
	}
	p.stream.Advance()

	right, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Op: op, Left: left, Right: right, Pos: tok.Loc}, nil
}

func (p *Parser) parsePreUnary() (ast.Expr, error) {
	tok := p.stream.Peek()
	if tok.Kind == token.Minus {
		p.stream.Advance()
		operand, err := p.parsePreUnary()
		if err != nil {
			return nil, err
		}
		return &ast.PreUnOp{Op: token.Minus, Operand: operand, Pos: tok.Loc}, nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.NumberLit:
		p.stream.Advance()
		return &ast.NumLit{Value: tok.IntValue, Pos: tok.Loc}, nil

	case token.CharLit:
		p.stream.Advance()
		var v byte
		if len(tok.Text) > 0 {
			v = tok.Text[0]
		}
		return &ast.CharLit{Value: v, Pos: tok.Loc}, nil

	case token.StringLit:
		p.stream.Advance()
		return &ast.StrLit{Value: tok.Text, Pos: tok.Loc}, nil

	case token.OpenParen:
		p.stream.Advance()
		inner, err := p.parseImmExpr()
		if err != nil {
			return nil, err
		}
		closeTok := p.stream.Peek()
		if closeTok.Kind != token.CloseParen {
			return nil, p.fail(closeTok.Loc, diagnose.Syntactic, "expected ')', got %s", closeTok.Kind)
		}
		p.stream.Advance()
		return &ast.BindParens{Inner: inner, Pos: tok.Loc}, nil

	case token.Identifier:
		p.stream.Advance()
		decl, ok := p.unit.Constants[tok.Text]
		if !ok {
			return nil, p.fail(tok.Loc, diagnose.Semantic, "undefined constant %q (forward references to constants are not permitted)", tok.Text)
		}
		return &ast.ConstantRef{Name: tok.Text, Decl: decl, Pos: tok.Loc}, nil

	default:
		return nil, p.fail(tok.Loc, diagnose.Syntactic, "unexpected %s in expression", tok.Kind)
	}
}
