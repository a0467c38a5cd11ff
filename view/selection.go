package view

import "fmt"

// Placement tells where a selection is set relative to a node.
type Placement uint8

const (
	// PlaceIn selects the whole content of the node.
	PlaceIn Placement = iota
	// PlaceOn selects the node itself.
	PlaceOn
	// PlaceStart collapses the selection at the start of the node.
	PlaceStart
	// PlaceEnd collapses the selection at the end of the node.
	PlaceEnd
	// PlaceBefore collapses the selection before the node.
	PlaceBefore
	// PlaceAfter collapses the selection after the node.
	PlaceAfter
)

// SelectionOptions holds the flags applied by the Selection setters.
type SelectionOptions struct {
	// Backward makes the focus precede the anchor in the last range.
	Backward bool
	// Fake marks a selection that is not rendered natively.
	Fake bool
	// Label describes a fake selection to assistive technology.
	Label string
}

// Selector is implemented by the selection types that can be compared
// with each other.
type Selector interface {
	selectionState() *Selection
}

// Selection is an ordered set of non-intersecting ranges. Every setter
// fires exactly one "change" event on success and changes nothing on
// failure.
type Selection struct {
	ranges            []Range
	lastRangeBackward bool
	isFake            bool
	fakeLabel         string
	emitter           *Emitter
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	s := &Selection{}
	s.emitter = newEmitter(s)
	return s
}

func (s *Selection) selectionState() *Selection {
	return s
}

// On registers a listener for the "change" event.
func (s *Selection) On(event string, callback Callback, opts ...ListenOption) *Listener {
	return s.emitter.On(event, callback, opts...)
}

// IsFake reports whether the selection is fake.
func (s *Selection) IsFake() bool {
	return s.isFake
}

// FakeSelectionLabel returns the label of a fake selection.
func (s *Selection) FakeSelectionLabel() string {
	return s.fakeLabel
}

// RangeCount returns the number of ranges.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// Ranges returns a copy of the ranges in insertion order.
func (s *Selection) Ranges() []Range {
	return append([]Range(nil), s.ranges...)
}

// IsCollapsed reports whether the selection is one collapsed range. An
// empty selection is not collapsed.
func (s *Selection) IsCollapsed() bool {
	return len(s.ranges) == 1 && s.ranges[0].IsCollapsed()
}

// IsBackward reports whether the last range was set from its end to its
// start. Collapsed selections are never backward.
func (s *Selection) IsBackward() bool {
	return !s.IsCollapsed() && s.lastRangeBackward
}

// Anchor returns the position where the selection starts, or false for an
// empty selection.
func (s *Selection) Anchor() (Position, bool) {
	if len(s.ranges) == 0 {
		return Position{}, false
	}
	last := s.ranges[len(s.ranges)-1]
	if s.lastRangeBackward {
		return last.end, true
	}
	return last.start, true
}

// Focus returns the position where the selection ends, or false for an
// empty selection.
func (s *Selection) Focus() (Position, bool) {
	if len(s.ranges) == 0 {
		return Position{}, false
	}
	last := s.ranges[len(s.ranges)-1]
	if s.lastRangeBackward {
		return last.start, true
	}
	return last.end, true
}

// FirstRange returns the range that starts first in document order.
func (s *Selection) FirstRange() (Range, bool) {
	if len(s.ranges) == 0 {
		return Range{}, false
	}
	first := s.ranges[0]
	for _, r := range s.ranges[1:] {
		if r.start.IsBefore(first.start) {
			first = r
		}
	}
	return first, true
}

// LastRange returns the range that ends last in document order.
func (s *Selection) LastRange() (Range, bool) {
	if len(s.ranges) == 0 {
		return Range{}, false
	}
	last := s.ranges[0]
	for _, r := range s.ranges[1:] {
		if r.end.IsAfter(last.end) {
			last = r
		}
	}
	return last, true
}

// FirstPosition returns the start of the first range.
func (s *Selection) FirstPosition() (Position, bool) {
	r, ok := s.FirstRange()
	return r.start, ok
}

// LastPosition returns the end of the last range.
func (s *Selection) LastPosition() (Position, bool) {
	r, ok := s.LastRange()
	return r.end, ok
}

// SelectedElement returns the element selected by a single range, or nil.
func (s *Selection) SelectedElement() *Element {
	if len(s.ranges) != 1 {
		return nil
	}
	return s.ranges[0].ContainedElement()
}

// EditableElement returns the innermost editable element containing the
// anchor, or nil.
func (s *Selection) EditableElement() *Element {
	anchor, ok := s.Anchor()
	if !ok {
		return nil
	}
	return anchor.EditableElement()
}

// IsEqual reports whether both selections have the same flags and equal
// ranges in the same order.
func (s *Selection) IsEqual(other Selector) bool {
	o := other.selectionState()
	if s.isFake != o.isFake || (s.isFake && s.fakeLabel != o.fakeLabel) {
		return false
	}
	if s.IsBackward() != o.IsBackward() || len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if !s.ranges[i].IsEqual(o.ranges[i]) {
			return false
		}
	}
	return true
}

// IsSimilar reports whether both selections have the same direction and
// their trimmed ranges match one to one, in any order.
func (s *Selection) IsSimilar(other Selector) bool {
	o := other.selectionState()
	if s.IsBackward() != o.IsBackward() || len(s.ranges) != len(o.ranges) {
		return false
	}

	theirs := make([]Range, len(o.ranges))
	for i, r := range o.ranges {
		theirs[i] = r.Trimmed()
	}
	used := make([]bool, len(theirs))
	for _, r := range s.ranges {
		trimmed := r.Trimmed()
		found := false
		for i, candidate := range theirs {
			if !used[i] && trimmed.IsEqual(candidate) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SetToRanges replaces the ranges. Backward applies to the last range.
func (s *Selection) SetToRanges(ranges []Range, opts SelectionOptions) error {
	if err := validateRanges(ranges); err != nil {
		return err
	}
	s.ranges = append([]Range(nil), ranges...)
	s.lastRangeBackward = opts.Backward && len(ranges) > 0
	s.isFake = opts.Fake
	s.fakeLabel = opts.Label
	s.emitter.Fire("change")
	return nil
}

// SetToPosition collapses the selection at pos.
func (s *Selection) SetToPosition(pos Position, opts SelectionOptions) error {
	if pos.IsZero() {
		return errNotFound("The selection position is not set.")
	}
	return s.SetToRanges([]Range{CollapsedRange(pos)}, opts)
}

// SetToNode sets the selection relative to node.
func (s *Selection) SetToNode(node *Node, placement Placement, opts SelectionOptions) error {
	r, err := rangeForPlacement(node, placement)
	if err != nil {
		return err
	}
	return s.SetToRanges([]Range{r}, opts)
}

// SetToSelection copies the ranges and flags of other.
func (s *Selection) SetToSelection(other Selector) error {
	o := other.selectionState()
	return s.SetToRanges(o.ranges, SelectionOptions{
		Backward: o.lastRangeBackward,
		Fake:     o.isFake,
		Label:    o.fakeLabel,
	})
}

// SetToNone removes all ranges.
func (s *Selection) SetToNone() {
	s.ranges = nil
	s.lastRangeBackward = false
	s.isFake = false
	s.fakeLabel = ""
	s.emitter.Fire("change")
}

// SetFocus moves the focus of the last range to pos, keeping the anchor.
func (s *Selection) SetFocus(pos Position) error {
	anchor, ok := s.Anchor()
	if !ok {
		return newError(ErrSelectionNoRanges, "Cannot set selection focus if there are no ranges in selection.")
	}
	if focus, _ := s.Focus(); focus.IsEqual(pos) {
		return nil
	}
	if pos.CompareWith(anchor) == RelationDifferent {
		return errWrongDocument("The focus is not in the tree of the anchor.")
	}

	var last Range
	backward := pos.IsBefore(anchor)
	if backward {
		last = Range{start: pos, end: anchor}
	} else {
		last = Range{start: anchor, end: pos}
	}

	ranges := append(s.Ranges()[:len(s.ranges)-1], last)
	if err := validateRanges(ranges); err != nil {
		return err
	}
	s.ranges = ranges
	s.lastRangeBackward = backward
	s.emitter.Fire("change")
	return nil
}

// String formats the ranges of the selection.
func (s *Selection) String() string {
	return fmt.Sprintf("%v backward=%t fake=%t", s.ranges, s.IsBackward(), s.isFake)
}

func validateRanges(ranges []Range) error {
	for i, r := range ranges {
		if r.IsZero() {
			return errNotFound("A selection range is not set.")
		}
		for _, prev := range ranges[:i] {
			if r.IsIntersecting(prev) {
				return newError(ErrSelectionRangeIntersect,
					fmt.Sprintf("Trying to add a range %v that intersects with another range %v in the selection.", r, prev))
			}
		}
	}
	return nil
}

func rangeForPlacement(node *Node, placement Placement) (Range, error) {
	if node == nil {
		return Range{}, errNotFound("The selection node is nil.")
	}
	switch placement {
	case PlaceIn:
		return RangeIn(node), nil
	case PlaceOn:
		return RangeOn(node)
	case PlaceStart:
		return CollapsedRange(PositionAtStart(node)), nil
	case PlaceEnd:
		return CollapsedRange(PositionAtEnd(node)), nil
	case PlaceBefore:
		pos, err := PositionBefore(node)
		return CollapsedRange(pos), err
	case PlaceAfter:
		pos, err := PositionAfter(node)
		return CollapsedRange(pos), err
	default:
		return Range{}, errInvalidState(fmt.Sprintf("Unknown placement %d.", placement))
	}
}
