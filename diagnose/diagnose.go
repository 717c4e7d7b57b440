// Package diagnose provides located diagnostics for the lexer and parser.
//
// A Diagnostic carries the same shape as a compiler error message: a file
// position, a message, and (when available) a rendered source window with
// a caret under the offending column. Diagnostics are fatal at first
// occurrence, per the language's error policy — there is no multi-error
// collection at the parser level, only inside the lexer where a single
// malformed token may need to report before the stream can continue.
package diagnose

import (
	"fmt"
	"strings"
)

// Position locates a single point in a source file.
type Position struct {
	Filename string // empty means "<string>"
	Row      int    // 1-based
	Column   int    // 0-based
}

func (p Position) String() string {
	name := p.Filename
	if name == "" {
		name = "<string>"
	}
	return fmt.Sprintf("%s:%d:%d", name, p.Row, p.Column)
}

// Kind categorizes a diagnostic per spec.md §7.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Semantic
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntactic:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Internal:
		return "internal compiler error"
	default:
		return "error"
	}
}

// Diagnostic is a single located error.
type Diagnostic struct {
	Pos     Position
	Kind    Kind
	Message string
	// Context, when set, is a pre-rendered source window (see Render).
	Context string
}

// New creates a Diagnostic with no source context attached.
func New(pos Position, kind Kind, message string) *Diagnostic {
	return &Diagnostic{Pos: pos, Kind: kind, Message: message}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Pos, d.Kind, d.Message)
	if d.Context != "" {
		sb.WriteByte('\n')
		sb.WriteString(d.Context)
	}
	return sb.String()
}

// WithContext attaches a rendered source window (built by Render) and
// returns the receiver for chaining. The underline is a single caret at
// d.Pos.Column: a Diagnostic records only a start position, not the width
// of the offending token.
func (d *Diagnostic) WithContext(source string, contextLines int) *Diagnostic {
	d.Context = Render(source, d.Pos, 1, contextLines)
	return d
}

// List collects diagnostics produced while a single malformed token or
// construct is being reported. The parser itself never accumulates more
// than one — first diagnostic wins — but the lexer may need to stash one
// while finishing a token.
type List struct {
	Items []*Diagnostic
}

// Add appends a diagnostic to the list.
func (l *List) Add(d *Diagnostic) { l.Items = append(l.Items, d) }

// HasErrors reports whether any diagnostic has been recorded.
func (l *List) HasErrors() bool { return len(l.Items) > 0 }

// First returns the first recorded diagnostic, or nil.
func (l *List) First() *Diagnostic {
	if len(l.Items) == 0 {
		return nil
	}
	return l.Items[0]
}

// Error implements the error interface, joining every recorded diagnostic.
func (l *List) Error() string {
	lines := make([]string, 0, len(l.Items))
	for _, d := range l.Items {
		lines = append(lines, d.Error())
	}
	return strings.Join(lines, "\n")
}

// Render builds a source window around pos: up to contextLines before and
// after the offending row, with the offending row followed by a caret-tilde
// underline spanning spanWidth characters starting at pos.Column.
//
// This is cosmetic (spec.md explicitly scopes "diagnostic cosmetics" out of
// the optimizer's testable surface) but is kept simple and deterministic so
// tests can assert on it when useful.
func Render(source string, pos Position, spanWidth int, contextLines int) string {
	if spanWidth <= 0 {
		spanWidth = 1
	}
	lines := strings.Split(source, "\n")
	row := pos.Row
	if row < 1 || row > len(lines) {
		return ""
	}

	start := row - contextLines
	if start < 1 {
		start = 1
	}
	end := row + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	var sb strings.Builder
	for i := start; i <= end; i++ {
		fmt.Fprintf(&sb, "%6d | %s\n", i, lines[i-1])
		if i == row {
			pad := strings.Repeat(" ", pos.Column)
			underline := "^" + strings.Repeat("~", max(0, spanWidth-1))
			fmt.Fprintf(&sb, "       | %s%s\n", pad, underline)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
