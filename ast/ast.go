// Package ast defines the SPARC assembly abstract syntax tree: a tagged
// sum of root-list node kinds (the top-level, doubly-linked sequence owned
// by a CompilationUnit) and a second sum of expression node kinds that
// appear inside instruction operands, directive arguments, and constant
// declarations.
//
// The root list is the one part of this tree that the teacher codebase
// doesn't need (ARM assembly doesn't require mid-stream splicing), so it is
// new here, grounded on spec.md §3/§9's arena-node design note rather than
// on any one teacher file. Node field shapes otherwise mirror this
// codebase's parser.Instruction/parser.Directive.
package ast

import "github.com/dymk/sparc-optim/token"

// RootNode is implemented by every node kind that may appear in a
// CompilationUnit's root list: Comment, Directive, LabelDecl, ConstantDecl,
// Instruction, Newline, Eof.
type RootNode interface {
	rootNode()
	link() *nodeLink
	Loc() token.Location
}

// nodeLink carries the doubly-linked list pointers. It is embedded in every
// RootNode implementation so the list primitives in unit.go can splice any
// concrete node type without a type switch.
type nodeLink struct {
	prev, next RootNode
}

func (l *nodeLink) link() *nodeLink { return l }

// Expr is implemented by every node kind that may appear as an instruction
// argument, directive argument, or constant value: LabelRef, ConstantRef,
// NumLit, StrLit, CharLit, BinOp, PreUnOp, BindParens, Register, Address.
type Expr interface {
	exprNode()
}
