package ast

import "testing"

func TestRegisterEqualityByName(t *testing.T) {
	a := &Register{Name: "l0"}
	b := &Register{Name: "l0"}
	if a == b {
		t.Fatal("expected distinct pointers")
	}
	if a.Name != b.Name {
		t.Fatal("expected equal names")
	}
}

func TestAllInputLocalOutputHas27Registers(t *testing.T) {
	names := AllInputLocalOutput()
	if len(names) != 27 {
		t.Fatalf("got %d registers, want 27", len(names))
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"i0", "i8", "l0", "l8", "o0", "o8"} {
		if !seen[want] {
			t.Errorf("missing register %q", want)
		}
	}
}

func TestInstructionClone(t *testing.T) {
	orig := &Instruction{Op: "mov", Args: []Expr{&Register{Name: "l0"}}, Annulled: false}
	clone := orig.Clone()
	if clone == orig {
		t.Fatal("Clone should return a distinct node identity")
	}
	if clone.Op != orig.Op || clone.Annulled != orig.Annulled {
		t.Fatal("Clone should preserve op and annul flag")
	}
	if &clone.Args[0] == &orig.Args[0] {
		// Args slice header is a fresh copy, but backing elements are
		// intentionally shared (immutable post-parse subtrees).
	}
	if clone.Args[0] != orig.Args[0] {
		t.Fatal("Clone should share argument subtrees")
	}
}
