package view

import "fmt"

// Range is an ordered pair of positions in one tree. Like Position it is a
// value and does not follow later tree changes.
type Range struct {
	start Position
	end   Position
}

// NewRange creates a range between two positions. Positions given in
// reverse document order are swapped.
func NewRange(start, end Position) Range {
	if end.IsBefore(start) {
		start, end = end, start
	}
	return Range{start: start, end: end}
}

// CollapsedRange creates a range that starts and ends at pos.
func CollapsedRange(pos Position) Range {
	return Range{start: pos, end: pos}
}

// RangeOn returns the range that contains exactly node.
func RangeOn(node *Node) (Range, error) {
	start, err := PositionBefore(node)
	if err != nil {
		return Range{}, err
	}
	return Range{start: start, end: start.ShiftedBy(1)}, nil
}

// RangeIn returns the range over the whole content of node.
func RangeIn(node *Node) Range {
	return Range{start: PositionAtStart(node), end: PositionAtEnd(node)}
}

// Start returns the start position.
func (r Range) Start() Position {
	return r.start
}

// End returns the end position.
func (r Range) End() Position {
	return r.end
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.start.IsZero()
}

// IsCollapsed reports whether start and end are equal.
func (r Range) IsCollapsed() bool {
	return r.start.IsEqual(r.end)
}

// IsFlat reports whether start and end share a parent.
func (r Range) IsFlat() bool {
	return r.start.parent == r.end.parent
}

// Root returns the root of the tree containing the range.
func (r Range) Root() *Node {
	return r.start.Root()
}

// IsEqual reports whether both ranges have equal boundaries.
func (r Range) IsEqual(other Range) bool {
	return r.start.IsEqual(other.start) && r.end.IsEqual(other.end)
}

// ContainsPosition reports whether pos lies strictly inside the range.
func (r Range) ContainsPosition(pos Position) bool {
	return pos.IsAfter(r.start) && pos.IsBefore(r.end)
}

// ContainsRange reports whether other lies inside the range. With loose,
// the boundaries of both ranges may touch.
func (r Range) ContainsRange(other Range, loose bool) bool {
	if other.IsCollapsed() {
		loose = false
	}
	containsStart := r.ContainsPosition(other.start) || (loose && r.start.IsEqual(other.start))
	containsEnd := r.ContainsPosition(other.end) || (loose && r.end.IsEqual(other.end))
	return containsStart && containsEnd
}

// IsIntersecting reports whether the ranges share any part.
func (r Range) IsIntersecting(other Range) bool {
	return r.start.IsBefore(other.end) && r.end.IsAfter(other.start)
}

// CommonAncestor returns the deepest node containing the whole range.
func (r Range) CommonAncestor() *Node {
	return r.start.CommonAncestor(r.end)
}

// Trimmed shrinks the range over boundary attribute and UI elements. The
// trimmed boundaries are moved into adjacent text nodes.
func (r Range) Trimmed() Range {
	start := r.start.LastMatchingPosition(skipBoundary, Forward)
	if !start.IsBefore(r.end) {
		return CollapsedRange(start)
	}
	end := r.end.LastMatchingPosition(skipBoundary, Backward)

	if node := start.NodeAfter(); node != nil && node.kind == KindText {
		start = PositionAtStart(node)
	}
	if node := end.NodeBefore(); node != nil && node.kind == KindText {
		end = PositionAtEnd(node)
	}
	return Range{start: start, end: end}
}

// Enlarged grows the range over boundary attribute and UI elements.
// Boundaries at the edges of text nodes are moved out of them.
func (r Range) Enlarged() Range {
	start := r.start.LastMatchingPosition(skipBoundary, Backward)
	end := r.end.LastMatchingPosition(skipBoundary, Forward)

	if start.parent.kind == KindText && start.IsAtStart() && start.parent.parent != nil {
		start = mustPositionBefore(start.parent)
	}
	if end.parent.kind == KindText && end.IsAtEnd() && end.parent.parent != nil {
		end = mustPositionAfter(end.parent)
	}
	return Range{start: start, end: end}
}

// ContainedElement returns the element that the range contains exactly, or
// nil. Boundaries at the edge of a text node count as outside of it.
func (r Range) ContainedElement() *Element {
	if r.IsCollapsed() {
		return nil
	}
	after := r.start.NodeAfter()
	before := r.end.NodeBefore()

	if r.start.parent.kind == KindText && r.start.IsAtEnd() {
		if next := r.start.parent.NextSibling(); next != nil {
			after = next
		}
	}
	if r.end.parent.kind == KindText && r.end.IsAtStart() {
		if prev := r.end.parent.PreviousSibling(); prev != nil {
			before = prev
		}
	}
	if after != nil && after == before && after.kind.IsElement() {
		return (*Element)(after)
	}
	return nil
}

// Walker returns a tree walker bounded by the range.
func (r Range) Walker(direction Direction, shallow bool) *TreeWalker {
	// Boundaries are set, so the walker cannot fail.
	w, _ := NewTreeWalker(WalkerOptions{Boundaries: &r, Direction: direction, Shallow: shallow})
	return w
}

// Items returns every node the range passes over, in document order.
func (r Range) Items() []*Node {
	var items []*Node
	walker := r.Walker(Forward, false)
	walker.ignoreElementEnd = true
	for _, value := range walker.All() {
		items = append(items, value.Item)
	}
	return items
}

// String formats the range as parent paths and offsets.
func (r Range) String() string {
	return fmt.Sprintf("[%v:%d, %v:%d]", r.start.parent.Path(), r.start.offset, r.end.parent.Path(), r.end.offset)
}

func skipBoundary(value WalkerValue) bool {
	return value.Item.kind == KindAttribute || value.Item.kind == KindUI
}
