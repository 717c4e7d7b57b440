package token

import "testing"

func tokensOf(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src, "")
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerPunctuation(t *testing.T) {
	toks := tokensOf(t, "%:.,=[]()+-&|^")
	want := []Kind{Percent, Colon, Dot, Comma, Assign, OpenBracket, CloseBracket,
		OpenParen, CloseParen, Plus, Minus, Ampersand, Pipe, Caret, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerIdentifierAndDirective(t *testing.T) {
	toks := tokensOf(t, "label1 .section")
	if toks[0].Kind != Identifier || toks[0].Text != "label1" {
		t.Errorf("got %v, want identifier 'label1'", toks[0])
	}
	if toks[1].Kind != Identifier || toks[1].Text != ".section" {
		t.Errorf("got %v, want identifier '.section'", toks[1])
	}
}

func TestLexerNumbers(t *testing.T) {
	toks := tokensOf(t, "0xFF 42")
	if toks[0].Kind != NumberLit || toks[0].IntValue != 0xFF {
		t.Errorf("got %v, want hex 255", toks[0])
	}
	if toks[1].Kind != NumberLit || toks[1].IntValue != 42 {
		t.Errorf("got %v, want decimal 42", toks[1])
	}
}

func TestLexerStringAndChar(t *testing.T) {
	toks := tokensOf(t, `"hi" 'a'`)
	if toks[0].Kind != StringLit || toks[0].Text != "hi" {
		t.Errorf("got %v, want string 'hi'", toks[0])
	}
	if toks[1].Kind != CharLit || toks[1].Text != "a" {
		t.Errorf("got %v, want char 'a'", toks[1])
	}
}

func TestLexerComments(t *testing.T) {
	toks := tokensOf(t, "! line comment\n/* block\ncomment */ident")
	if toks[0].Kind != Comment || toks[0].Text != "! line comment" {
		t.Errorf("got %v, want line comment", toks[0])
	}
	if toks[1].Kind != Comment {
		t.Errorf("got %v, want block comment", toks[1])
	}
	if toks[2].Kind != Identifier || toks[2].Text != "ident" {
		t.Errorf("got %v, want identifier 'ident'", toks[2])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := NewLexer(`"oops`, "")
	l.NextToken()
	if !l.Errors().HasErrors() {
		t.Fatal("expected a lexical error for unterminated string")
	}
}

func TestLexerLocationTracksFirstCharacter(t *testing.T) {
	toks := tokensOf(t, "mov 1, %l0\ncmp %l0, %l1")

	mov := toks[0]
	if mov.Loc.Row != 1 || mov.Loc.Column != 0 {
		t.Errorf("'mov' location = %+v, want row 1 col 0", mov.Loc)
	}

	var cmp Token
	for _, tok := range toks {
		if tok.Kind == Identifier && tok.Text == "cmp" {
			cmp = tok
		}
	}
	if cmp.Loc.Row != 2 || cmp.Loc.Column != 0 {
		t.Errorf("'cmp' location = %+v, want row 2 col 0", cmp.Loc)
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	l := NewLexer("", "")
	a := l.NextToken()
	b := l.NextToken()
	if a.Kind != EOF || b.Kind != EOF {
		t.Fatalf("expected repeated EOF, got %v and %v", a, b)
	}
}
