package view

// Relation is the result of comparing two positions.
type Relation uint8

const (
	RelationBefore Relation = iota + 1
	RelationSame
	RelationAfter
	// RelationDifferent means the positions are in different trees.
	RelationDifferent
)

// String returns the string representation of the Relation.
func (r Relation) String() string {
	switch r {
	case RelationBefore:
		return "before"
	case RelationSame:
		return "same"
	case RelationAfter:
		return "after"
	case RelationDifferent:
		return "different"
	default:
		return "unknown"
	}
}

// Position is a point in a view tree: an offset inside a parent. For a
// text parent the offset counts characters, otherwise children. A Position
// is a value; it does not follow later tree changes.
type Position struct {
	parent *Node
	offset int
}

// NewPosition creates a position at offset inside parent. It fails when the
// offset is outside the parent.
func NewPosition(parent *Node, offset int) (Position, error) {
	if parent == nil {
		return Position{}, errNotFound("The position parent is nil.")
	}
	if offset < 0 || offset > parent.length() {
		return Position{}, errIndexSize("The offset is out of range.")
	}
	return Position{parent: parent, offset: offset}, nil
}

// PositionAtStart returns the position at the start of parent.
func PositionAtStart(parent *Node) Position {
	return Position{parent: parent}
}

// PositionAtEnd returns the position at the end of parent.
func PositionAtEnd(parent *Node) Position {
	return Position{parent: parent, offset: parent.length()}
}

// PositionBefore returns the position right before node.
func PositionBefore(node *Node) (Position, error) {
	if node.parent == nil {
		return Position{}, errInvalidState("Cannot create a position before a node without a parent.")
	}
	return Position{parent: node.parent, offset: node.Index()}, nil
}

// PositionAfter returns the position right after node.
func PositionAfter(node *Node) (Position, error) {
	if node.parent == nil {
		return Position{}, errInvalidState("Cannot create a position after a node without a parent.")
	}
	return Position{parent: node.parent, offset: node.Index() + 1}, nil
}

// IsZero reports whether the position is unset.
func (p Position) IsZero() bool {
	return p.parent == nil
}

// Parent returns the node containing the position.
func (p Position) Parent() *Node {
	return p.parent
}

// Offset returns the offset inside the parent.
func (p Position) Offset() int {
	return p.offset
}

// Root returns the root of the tree containing the position.
func (p Position) Root() *Node {
	return p.parent.Root()
}

// NodeAfter returns the node right after the position, or nil. Positions
// inside text have no node after them.
func (p Position) NodeAfter() *Node {
	if p.parent.kind == KindText {
		return nil
	}
	return p.parent.childAt(p.offset)
}

// NodeBefore returns the node right before the position, or nil.
func (p Position) NodeBefore() *Node {
	if p.parent.kind == KindText {
		return nil
	}
	return p.parent.childAt(p.offset - 1)
}

// IsAtStart reports whether the position is at the start of its parent.
func (p Position) IsAtStart() bool {
	return p.offset == 0
}

// IsAtEnd reports whether the position is at the end of its parent.
func (p Position) IsAtEnd() bool {
	return p.offset == p.parent.length()
}

// ShiftedBy returns a position moved by shift inside the same parent,
// clamped to the parent bounds.
func (p Position) ShiftedBy(shift int) Position {
	offset := p.offset + shift
	if offset < 0 {
		offset = 0
	}
	if max := p.parent.length(); offset > max {
		offset = max
	}
	return Position{parent: p.parent, offset: offset}
}

// EditableElement returns the innermost editable element containing the
// position, or nil.
func (p Position) EditableElement() *Element {
	for node := p.parent; node != nil; node = node.parent {
		if node.Is(TagEditableElement) {
			return (*Element)(node)
		}
	}
	return nil
}

// Ancestors returns the parent and its ancestors, root first.
func (p Position) Ancestors() []*Node {
	return p.parent.Ancestors(AncestorOptions{IncludeSelf: true})
}

// CommonAncestor returns the deepest node containing both positions, or nil.
func (p Position) CommonAncestor(other Position) *Node {
	return p.parent.CommonAncestor(other.parent, AncestorOptions{IncludeSelf: true})
}

// IsEqual reports whether both positions point at the same place.
func (p Position) IsEqual(other Position) bool {
	return p.parent == other.parent && p.offset == other.offset
}

// IsBefore reports whether p precedes other.
func (p Position) IsBefore(other Position) bool {
	return p.CompareWith(other) == RelationBefore
}

// IsAfter reports whether p follows other.
func (p Position) IsAfter(other Position) bool {
	return p.CompareWith(other) == RelationAfter
}

// CompareWith compares two positions by their paths from the root.
func (p Position) CompareWith(other Position) Relation {
	if p.parent == nil || other.parent == nil || p.Root() != other.Root() {
		return RelationDifferent
	}
	if p.IsEqual(other) {
		return RelationSame
	}

	a := append(p.parent.Path(), p.offset)
	b := append(other.parent.Path(), other.offset)
	switch i := firstDifference(a, b); {
	case i == len(a):
		return RelationBefore
	case i == len(b):
		return RelationAfter
	case a[i] < b[i]:
		return RelationBefore
	default:
		return RelationAfter
	}
}

// LastMatchingPosition walks from the position while skip returns true and
// returns the last position reached. It stops at the first value for which
// skip returns false, leaving the position before that value.
func (p Position) LastMatchingPosition(skip func(WalkerValue) bool, direction Direction) Position {
	walker := &TreeWalker{position: p, direction: direction}
	walker.Skip(skip)
	return walker.Position()
}
