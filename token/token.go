// Package token implements the lexical layer of the SPARC assembly
// toolchain: a closed set of token kinds, a lexer that turns source text
// into located tokens one at a time, and a Stream that buffers them lazily
// behind a peek/advance/snapshot/restore contract for the parser.
package token

import (
	"fmt"

	"github.com/dymk/sparc-optim/diagnose"
)

// Kind is the closed set of token kinds the lexer ever produces.
type Kind int

const (
	Comment       Kind = iota // ! line comment or /* block comment */, verbatim text
	Percent                   // %
	Colon                     // :
	Dot                       // .
	Comma                     // ,
	Assign                    // =
	OpenBracket               // [
	CloseBracket              // ]
	OpenParen                 // (
	CloseParen                // )
	Plus                      // +
	Minus                     // -
	Ampersand                 // &
	Pipe                      // |
	Caret                     // ^
	StringLit                 // "..."
	CharLit                   // '.'
	NumberLit                 // 0x[0-9A-F]+ or [0-9]+
	Identifier                // [.]?[A-Za-z_][A-Za-z0-9_]*
	EOF                       // end of input, repeats forever on Peek
)

var kindNames = map[Kind]string{
	Comment:      "comment",
	Percent:      "%",
	Colon:        ":",
	Dot:          ".",
	Comma:        ",",
	Assign:       "=",
	OpenBracket:  "[",
	CloseBracket: "]",
	OpenParen:    "(",
	CloseParen:   ")",
	Plus:         "+",
	Minus:        "-",
	Ampersand:    "&",
	Pipe:         "|",
	Caret:        "^",
	StringLit:    "string-lit",
	CharLit:      "char-lit",
	NumberLit:    "number-lit",
	Identifier:   "identifier",
	EOF:          "end-of-input",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Location is a (row, column, filename) position in source text. Row is
// 1-based, column is 0-based, matching this codebase's diagnostic position
// convention.
type Location = diagnose.Position

// Token is a single lexeme with its source location. IntValue is populated
// only when Kind == NumberLit.
type Token struct {
	Kind     Kind
	Text     string
	IntValue int64
	Loc      Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Loc)
}
