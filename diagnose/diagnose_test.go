package diagnose

import "testing"

func TestPositionString(t *testing.T) {
	p := Position{Row: 3, Column: 5}
	if got, want := p.String(), "<string>:3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	p.Filename = "prog.s"
	if got, want := p.String(), "prog.s:3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDiagnosticError(t *testing.T) {
	d := New(Position{Row: 1, Column: 0}, Syntactic, "unexpected token")
	if got, want := d.Error(), "<string>:1:0: syntax error: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestListFirstWins(t *testing.T) {
	var l List
	if l.HasErrors() {
		t.Fatal("empty list should not have errors")
	}
	l.Add(New(Position{Row: 1}, Lexical, "first"))
	l.Add(New(Position{Row: 2}, Lexical, "second"))

	if !l.HasErrors() {
		t.Fatal("expected HasErrors true")
	}
	if got := l.First().Message; got != "first" {
		t.Errorf("First().Message = %q, want %q", got, "first")
	}
}

func TestRenderUnderline(t *testing.T) {
	source := "mov 1, %l0\ncmp %l0, %l1\nbge label2\n"
	out := Render(source, Position{Row: 2, Column: 4}, 3, 1)
	if out == "" {
		t.Fatal("expected non-empty render")
	}
	if !contains(out, "^~~") {
		t.Errorf("expected underline span in output, got:\n%s", out)
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
