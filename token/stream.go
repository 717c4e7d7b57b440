package token

import "github.com/dymk/sparc-optim/diagnose"

// Stream buffers a Lexer's output behind a peek/advance/snapshot/restore
// contract: Peek is idempotent, the sequence is finite and terminated by a
// single EOF token that Peek keeps returning at end, and Snapshot/Restore
// are O(1) because they are just an index into the already-materialized
// token slice.
//
// This departs from the teacher's own parser, which eagerly tokenizes the
// whole input up front via Lexer.TokenizeAll before parsing starts; here
// tokens are appended lazily, one per Advance past the buffered frontier,
// because the grammar's one bounded snapshot/restore (spec.md §4.2) needs
// a stable index to rewind to, not a full up-front slice.
type Stream struct {
	lexer  *Lexer
	tokens []Token
	pos    int // index of the current token within tokens
}

// NewStream creates a Stream over an already-constructed Lexer.
func NewStream(l *Lexer) *Stream {
	s := &Stream{lexer: l}
	s.tokens = append(s.tokens, l.NextToken())
	return s
}

// Errors forwards the underlying lexer's accumulated diagnostics.
func (s *Stream) Errors() *diagnose.List { return s.lexer.Errors() }

// Peek returns the current token without consuming it. Calling Peek
// repeatedly returns the same token; at end of input it keeps returning
// the EOF token.
func (s *Stream) Peek() Token {
	return s.tokens[s.pos]
}

// Advance consumes the current token, making the next one current. Once
// EOF has been reached, Advance is a no-op: the stream just keeps standing
// on the EOF token.
func (s *Stream) Advance() {
	if s.tokens[s.pos].Kind == EOF {
		return
	}
	s.pos++
	if s.pos == len(s.tokens) {
		s.tokens = append(s.tokens, s.lexer.NextToken())
	}
}

// PeekAhead returns the token n positions past the current one without
// consuming anything (PeekAhead(0) is equivalent to Peek). The parser uses
// this for its two-token lookahead: telling `name:`, `name =` and an
// instruction apart, and distinguishing `op,a tgt` from `op tgt`, which
// requires seeing past a leading comma.
func (s *Stream) PeekAhead(n int) Token {
	for s.pos+n >= len(s.tokens) {
		if s.tokens[len(s.tokens)-1].Kind == EOF {
			return s.tokens[len(s.tokens)-1]
		}
		s.tokens = append(s.tokens, s.lexer.NextToken())
	}
	return s.tokens[s.pos+n]
}

// Mark is an opaque snapshot of stream position, restorable in O(1).
type Mark int

// Snapshot captures the current position for later Restore.
func (s *Stream) Snapshot() Mark { return Mark(s.pos) }

// Restore rewinds the stream to a previously captured Mark.
func (s *Stream) Restore(m Mark) { s.pos = int(m) }
