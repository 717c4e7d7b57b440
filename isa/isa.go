// Package isa holds per-opcode instruction semantics: argument schemas,
// the delay-slot/two-cycle/branch classification, and the register
// read/write sets the optimizer's data-flow analysis depends on
// (spec.md §4.3).
//
// Grounded stylistically on this codebase's per-instruction register-touch
// bookkeeping in vm/data_processing.go and vm/flags.go (which registers an
// executing instruction reads and writes, there for condition-flag
// tracking; here for delay-slot safety) and on the single static metadata
// table design note in spec.md §9.
package isa

import "github.com/dymk/sparc-optim/ast"

// ArgKind is a bitmask of the expression shapes one argument position may
// take.
type ArgKind int

const (
	KindReg ArgKind = 1 << iota
	KindImm
	KindAddress
	KindLabel
)

// Accepts reports whether k permits the given kind.
func (k ArgKind) Accepts(other ArgKind) bool { return k&other != 0 }

// Metadata is the full semantic record for one opcode.
type Metadata struct {
	Schema   []ArgKind // one entry per required argument position
	HasDelay bool      // has a delay slot (spec.md §4.3)
	TwoCycle bool      // may not be placed in a delay slot
	IsBranch bool
}

// IsSingleCycle is the negation of TwoCycle (spec.md §4.3).
func (m Metadata) IsSingleCycle() bool { return !m.TwoCycle }

var branchOps = []string{"bne", "be", "ba", "bn", "bge", "bg", "ble", "bl"}

var table = buildTable()

func buildTable() map[string]Metadata {
	t := make(map[string]Metadata)

	regOrImm := KindReg | KindImm

	for _, op := range branchOps {
		t[op] = Metadata{Schema: []ArgKind{KindLabel}, HasDelay: true, TwoCycle: true, IsBranch: true}
	}

	t["mov"] = Metadata{Schema: []ArgKind{regOrImm, KindReg}}
	t["set"] = Metadata{Schema: []ArgKind{KindImm, KindReg}, TwoCycle: true}
	t["cmp"] = Metadata{Schema: []ArgKind{KindReg, regOrImm}}
	t["save"] = Metadata{Schema: []ArgKind{KindReg, regOrImm, KindReg}}
	t["call"] = Metadata{Schema: []ArgKind{KindLabel}, HasDelay: true, TwoCycle: true}

	for _, op := range []string{"ld", "ldub", "ldsb", "lduh", "ldsh"} {
		t[op] = Metadata{Schema: []ArgKind{KindAddress, KindReg}}
	}
	for _, op := range []string{"st", "sth", "stb"} {
		t[op] = Metadata{Schema: []ArgKind{KindReg, KindAddress}}
	}
	for _, op := range []string{"add", "sub", "srl", "sll", "sra"} {
		t[op] = Metadata{Schema: []ArgKind{KindReg, regOrImm, KindReg}}
	}

	t["nop"] = Metadata{Schema: nil}
	t["ret"] = Metadata{Schema: nil, HasDelay: true, TwoCycle: true}
	t["restore"] = Metadata{Schema: nil}

	return t
}

// Lookup returns the metadata for op and whether it is a recognized
// opcode.
func Lookup(op string) (Metadata, bool) {
	m, ok := table[op]
	return m, ok
}

// IsBranch reports whether op is one of the eight conditional/unconditional
// branch mnemonics.
func IsBranch(op string) bool {
	m, ok := table[op]
	return ok && m.IsBranch
}

// HasDelaySlot reports whether op has a delay slot: every branch, plus
// call and ret.
func HasDelaySlot(op string) bool {
	m, ok := table[op]
	return ok && m.HasDelay
}

// IsTwoCycle reports whether op may not be placed into a delay slot: every
// has-delay-slot op, plus set.
func IsTwoCycle(op string) bool {
	m, ok := table[op]
	return ok && m.TwoCycle
}

// RegisterSet is an unordered set of register names, compared by name per
// spec.md §3.
type RegisterSet map[string]struct{}

// NewRegisterSet builds a RegisterSet from the given names.
func NewRegisterSet(names ...string) RegisterSet {
	s := make(RegisterSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s RegisterSet) Add(name string) { s[name] = struct{}{} }

// AddAll inserts every name in other into the set.
func (s RegisterSet) AddAll(other RegisterSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

// Contains reports whether name is a member.
func (s RegisterSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Intersects reports whether s and other share any register name.
func (s RegisterSet) Intersects(other RegisterSet) bool {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	for n := range small {
		if _, ok := big[n]; ok {
			return true
		}
	}
	return false
}

// outgoingArgRegisters is built from the canonical singletons spec.md §3
// names directly (ast.O0..ast.O5), not re-spelled string literals.
var outgoingArgRegisters = []string{
	ast.O0.Name, ast.O1.Name, ast.O2.Name, ast.O3.Name, ast.O4.Name, ast.O5.Name,
}

// Writes computes the set of registers inst writes (spec.md §4.3).
func Writes(inst *ast.Instruction) RegisterSet {
	switch inst.Op {
	case "nop", "ret", "restore":
		return NewRegisterSet()
	case "mov", "set":
		return NewRegisterSet(registersIn(arg(inst, 1))...)
	case "save":
		s := NewRegisterSet(registersIn(arg(inst, 2))...)
		s.AddAll(NewRegisterSet(ast.AllInputLocalOutput()...))
		return s
	case "sll", "srl", "sra", "add", "sub":
		return NewRegisterSet(registersIn(arg(inst, 2))...)
	case "call":
		return NewRegisterSet(ast.O0.Name)
	case "cmp":
		return NewRegisterSet(ast.NZVC.Name)
	case "ld", "ldub", "ldsb", "lduh", "ldsh":
		return NewRegisterSet(registersIn(arg(inst, 1))...)
	}
	if IsBranch(inst.Op) {
		return NewRegisterSet()
	}
	return NewRegisterSet()
}

// Reads computes the set of registers inst reads (spec.md §4.3), expanded
// transitively through Address nodes.
func Reads(inst *ast.Instruction) RegisterSet {
	switch inst.Op {
	case "nop", "ret", "restore":
		return NewRegisterSet()
	case "mov", "set":
		return NewRegisterSet(registersIn(arg(inst, 0))...)
	case "save", "sll", "srl", "sra", "add", "sub", "cmp":
		s := NewRegisterSet(registersIn(arg(inst, 0))...)
		s.AddAll(NewRegisterSet(registersIn(arg(inst, 1))...))
		return s
	case "call":
		return NewRegisterSet(outgoingArgRegisters...)
	case "ld", "ldub", "ldsb", "lduh", "ldsh":
		return NewRegisterSet(registersIn(arg(inst, 0))...)
	case "st", "sth", "stb":
		s := NewRegisterSet(registersIn(arg(inst, 0))...)
		s.AddAll(NewRegisterSet(registersIn(arg(inst, 1))...))
		return s
	}
	if IsBranch(inst.Op) {
		return NewRegisterSet(ast.NZVC.Name)
	}
	return NewRegisterSet()
}

func arg(inst *ast.Instruction, i int) ast.Expr {
	if i < 0 || i >= len(inst.Args) {
		return nil
	}
	return inst.Args[i]
}

// registersIn returns every register name directly referenced by e: e
// itself if it is a Register, or e's base (and offset, if the offset is a
// Register) if e is an Address. Immediates, labels, and constants
// reference no registers.
func registersIn(e ast.Expr) []string {
	switch v := e.(type) {
	case nil:
		return nil
	case *ast.Register:
		return []string{v.Name}
	case *ast.Address:
		names := []string{v.Base.Name}
		if reg, ok := v.Offset.(*ast.Register); ok {
			names = append(names, reg.Name)
		}
		return names
	default:
		return nil
	}
}
