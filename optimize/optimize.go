// Package optimize implements the two delay-slot peephole passes over a
// parsed CompilationUnit: branch-target hoisting, then basic-block
// delay-slot filling (spec.md §4.4). Both passes are expressed as a
// repeated forward scan for the next "candidate" nop, classifying it into
// removed/filled/unremovable until no candidate remains.
//
// Grounded on this codebase's SymbolTable.Reference/relocation bookkeeping
// for the idea of a single forward scan accumulating state as it goes;
// the actual data-flow walk (tainted register sets, forbidden-on-branch)
// is new, driven directly by spec.md's definition of the two passes since
// nothing in this codebase's ARM assembler models delay slots.
package optimize

import (
	"github.com/dymk/sparc-optim/ast"
	"github.com/dymk/sparc-optim/diagnose"
	"github.com/dymk/sparc-optim/isa"
)

// Run mutates unit in place: branch-target hoisting first, then
// basic-block delay-slot filling, per spec.md §4.4.
func Run(unit *ast.CompilationUnit) error {
	if err := branchTargetHoist(unit); err != nil {
		return err
	}
	if err := basicBlockFill(unit); err != nil {
		return err
	}
	return nil
}

func internalError(n ast.RootNode, message string) error {
	return diagnose.New(n.Loc(), diagnose.Internal, message)
}

// findNextNop returns the first nop Instruction in root-list order that is
// not already marked unremovable for the current pass, or nil if none
// remain.
func findNextNop(unit *ast.CompilationUnit, unremovable map[*ast.Instruction]bool) *ast.Instruction {
	for n := unit.First(); n != nil; n = ast.Next(n) {
		if inst, ok := n.(*ast.Instruction); ok && inst.Op == "nop" && !unremovable[inst] {
			return inst
		}
	}
	return nil
}

func isSingleCycleInstruction(n ast.RootNode) (*ast.Instruction, bool) {
	inst, ok := n.(*ast.Instruction)
	if !ok {
		return nil, false
	}
	meta, ok := isa.Lookup(inst.Op)
	if !ok || !meta.IsSingleCycle() {
		return nil, false
	}
	return inst, true
}

// basicBlockFill is spec.md §4.4.1.
func basicBlockFill(unit *ast.CompilationUnit) error {
	unremovable := map[*ast.Instruction]bool{}

	for {
		n := findNextNop(unit, unremovable)
		if n == nil {
			return nil
		}

		prev := ast.Prev(n)
		p, ok := prev.(*ast.Instruction)
		if !ok || !isa.HasDelaySlot(p.Op) {
			unit.Unlink(n)
			continue
		}

		tainted := isa.NewRegisterSet()
		if isa.IsBranch(p.Op) {
			tainted = isa.Reads(p)
		}

		var filler *ast.Instruction
		for q := ast.Prev(prev); q != nil; q = ast.Prev(q) {
			if _, ok := q.(*ast.LabelDecl); ok {
				break
			}
			qInst, ok := q.(*ast.Instruction)
			if !ok {
				continue
			}
			if isa.IsBranch(qInst.Op) {
				break
			}
			meta, _ := isa.Lookup(qInst.Op)
			if meta.IsSingleCycle() && !meta.HasDelay {
				qReads := isa.Reads(qInst)
				qWrites := isa.Writes(qInst)
				if !qReads.Intersects(tainted) && !qWrites.Intersects(tainted) {
					filler = qInst
					break
				}
			}
			tainted.AddAll(isa.Reads(qInst))
			tainted.AddAll(isa.Writes(qInst))
		}

		if filler != nil {
			unit.Unlink(filler)
			unit.InsertBefore(n, filler)
			unit.InsertAfter(filler, &ast.Newline{})
			unit.Unlink(n)
			continue
		}

		unremovable[n] = true
	}
}

// branchTargetHoist is spec.md §4.4.2.
func branchTargetHoist(unit *ast.CompilationUnit) error {
	external := map[string]bool{}
	for n := unit.First(); n != nil; n = ast.Next(n) {
		d, ok := n.(*ast.Directive)
		if !ok || d.Name != ".global" {
			continue
		}
		if ref, ok := d.Arg.(*ast.LabelRef); ok {
			external[ref.Name] = true
		}
	}

	unremovable := map[*ast.Instruction]bool{}

	for {
		n := findNextNop(unit, unremovable)
		if n == nil {
			return nil
		}

		prev := ast.Prev(n)
		b, ok := prev.(*ast.Instruction)
		if !ok || !isa.IsBranch(b.Op) {
			unremovable[n] = true
			continue
		}

		labelRef, ok := b.Args[0].(*ast.LabelRef)
		if !ok {
			return internalError(b, "branch instruction missing its label argument")
		}
		d := labelRef.Decl
		if d == nil || external[d.Name] {
			unremovable[n] = true
			continue
		}

		fInst, ok := isSingleCycleInstruction(ast.Next(d))
		if !ok {
			unremovable[n] = true
			continue
		}

		branches, valid := collectBranchesTo(unit, d.Name)
		if !valid {
			unremovable[n] = true
			continue
		}

		unit.Unlink(fInst)
		unit.InsertBefore(d, fInst)

		for _, b2 := range branches {
			nopAfter := ast.Next(b2).(*ast.Instruction)
			clone := fInst.Clone()
			unit.Unlink(nopAfter)
			unit.InsertAfter(b2, clone)
			unit.InsertAfter(clone, &ast.Newline{})
			b2.Annulled = true
		}
	}
}

// collectBranchesTo finds every branch instruction whose label argument
// names labelName, and reports whether every one of them is eligible for
// the hoist (not already annulled, each immediately followed by a nop).
func collectBranchesTo(unit *ast.CompilationUnit, labelName string) ([]*ast.Instruction, bool) {
	var branches []*ast.Instruction
	for m := unit.First(); m != nil; m = ast.Next(m) {
		inst, ok := m.(*ast.Instruction)
		if !ok || !isa.IsBranch(inst.Op) {
			continue
		}
		ref, ok := inst.Args[0].(*ast.LabelRef)
		if !ok || ref.Name != labelName {
			continue
		}
		if inst.Annulled {
			return nil, false
		}
		after, ok := ast.Next(inst).(*ast.Instruction)
		if !ok || after.Op != "nop" {
			return nil, false
		}
		branches = append(branches, inst)
	}
	return branches, true
}
