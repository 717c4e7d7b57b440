package ast

// CompilationUnit owns the root list: an ordered, doubly-linked sequence
// of top-level items terminated by an Eof node. It exclusively owns every
// root-list node and every expression subtree reachable from them
// (spec.md §3 "Ownership").
//
// Labels is the label resolution table (name -> LabelDecl) and Constants
// is the constant table (name -> ConstantDecl); their key sets are
// disjoint by construction (the parser refuses a redefinition or a
// cross-table collision as a semantic error before either table is
// mutated further).
type CompilationUnit struct {
	head, tail RootNode // tail is always the Eof node once parsing completes
	Labels     map[string]*LabelDecl
	Constants  map[string]*ConstantDecl
}

// NewCompilationUnit creates an empty unit whose root list is just the
// terminating Eof node.
func NewCompilationUnit(eof *Eof) *CompilationUnit {
	u := &CompilationUnit{
		Labels:    make(map[string]*LabelDecl),
		Constants: make(map[string]*ConstantDecl),
	}
	u.head = eof
	u.tail = eof
	return u
}

// First returns the first node in the root list.
func (u *CompilationUnit) First() RootNode { return u.head }

// Next returns n's successor in the root list, or nil if n is the last
// node (the Eof node has no successor).
func Next(n RootNode) RootNode { return n.link().next }

// Prev returns n's predecessor in the root list, or nil if n is the first
// node.
func Prev(n RootNode) RootNode { return n.link().prev }

// Append inserts n at the end of the root list, just before the current
// tail (normally the Eof node). It is the parser's primary way of building
// the list top to bottom.
func (u *CompilationUnit) Append(n RootNode) {
	if u.tail == nil {
		u.head = n
		u.tail = n
		return
	}
	u.InsertBefore(u.tail, n)
	if n.link().next == nil {
		u.tail = n
	}
}

// Unlink removes n from the root list in O(1). n's own prev/next pointers
// are cleared; n may be relinked elsewhere afterward.
func (u *CompilationUnit) Unlink(n RootNode) {
	l := n.link()
	prev, next := l.prev, l.next

	if prev != nil {
		prev.link().next = next
	} else {
		u.head = next
	}
	if next != nil {
		next.link().prev = prev
	} else {
		u.tail = prev
	}

	l.prev, l.next = nil, nil
}

// InsertBefore splices n into the list immediately before anchor, in O(1).
func (u *CompilationUnit) InsertBefore(anchor, n RootNode) {
	al := anchor.link()
	nl := n.link()

	prev := al.prev
	nl.prev, nl.next = prev, anchor
	al.prev = n
	if prev != nil {
		prev.link().next = n
	} else {
		u.head = n
	}
}

// InsertAfter splices n into the list immediately after anchor, in O(1).
func (u *CompilationUnit) InsertAfter(anchor, n RootNode) {
	al := anchor.link()
	nl := n.link()

	next := al.next
	nl.prev, nl.next = anchor, next
	al.next = n
	if next != nil {
		next.link().prev = n
	} else {
		u.tail = n
	}
}

// Nodes returns a slice snapshot of the root list in order, convenient for
// tests and for the pretty printer's single forward pass.
func (u *CompilationUnit) Nodes() []RootNode {
	var nodes []RootNode
	for n := u.head; n != nil; n = Next(n) {
		nodes = append(nodes, n)
	}
	return nodes
}
