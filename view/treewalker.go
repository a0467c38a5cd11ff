package view

// Direction is the walking direction of a TreeWalker.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// WalkerValueType tells what a walker step passed over.
type WalkerValueType uint8

const (
	ValueElementStart WalkerValueType = iota + 1
	ValueElementEnd
	ValueText
)

// String returns the string representation of the WalkerValueType.
func (t WalkerValueType) String() string {
	switch t {
	case ValueElementStart:
		return "elementStart"
	case ValueElementEnd:
		return "elementEnd"
	case ValueText:
		return "text"
	default:
		return "unknown"
	}
}

// WalkerValue describes one walker step. For text steps Item is the text
// node and Data the characters passed over.
type WalkerValue struct {
	Type             WalkerValueType
	Item             *Node
	Data             string
	PreviousPosition Position
	NextPosition     Position
	Length           int
}

// WalkerOptions configures a TreeWalker. Either Boundaries or StartPosition
// must be set.
type WalkerOptions struct {
	Boundaries    *Range
	StartPosition *Position
	Direction     Direction
	// Shallow steps over elements instead of entering them.
	Shallow bool
	// IgnoreElementEnd skips elementEnd steps.
	IgnoreElementEnd bool
}

// TreeWalker iterates over a view tree from a position.
type TreeWalker struct {
	position         Position
	direction        Direction
	boundaries       *Range
	shallow          bool
	ignoreElementEnd bool
}

// NewTreeWalker creates a walker. Without StartPosition it starts at the
// boundary edge matching its direction.
func NewTreeWalker(opts WalkerOptions) (*TreeWalker, error) {
	if opts.Boundaries == nil && opts.StartPosition == nil {
		return nil, errInvalidState("A tree walker needs boundaries or a start position.")
	}
	w := &TreeWalker{
		direction:        opts.Direction,
		boundaries:       opts.Boundaries,
		shallow:          opts.Shallow,
		ignoreElementEnd: opts.IgnoreElementEnd,
	}
	switch {
	case opts.StartPosition != nil:
		w.position = *opts.StartPosition
	case opts.Direction == Backward:
		w.position = opts.Boundaries.end
	default:
		w.position = opts.Boundaries.start
	}
	return w, nil
}

// Position returns the current walker position.
func (w *TreeWalker) Position() Position {
	return w.position
}

// Next moves the walker one step and reports false when it is done.
func (w *TreeWalker) Next() (WalkerValue, bool) {
	if w.direction == Backward {
		return w.previous()
	}
	return w.next()
}

// Skip moves the walker while skip returns true. The walker ends at the
// position before the first value that is not skipped.
func (w *TreeWalker) Skip(skip func(WalkerValue) bool) {
	for {
		previous := w.position
		value, ok := w.Next()
		if !ok {
			return
		}
		if !skip(value) {
			w.position = previous
			return
		}
	}
}

// All returns the remaining values.
func (w *TreeWalker) All() []WalkerValue {
	var values []WalkerValue
	for {
		value, ok := w.Next()
		if !ok {
			return values
		}
		values = append(values, value)
	}
}

func (w *TreeWalker) next() (WalkerValue, bool) {
	for {
		pos := w.position
		if w.boundaries != nil && pos.IsEqual(w.boundaries.end) {
			return WalkerValue{}, false
		}
		parent := pos.parent

		if parent.kind == KindText {
			if pos.IsAtEnd() {
				if parent.parent == nil {
					return WalkerValue{}, false
				}
				w.position = mustPositionAfter(parent)
				continue
			}
			end := parent.length()
			bounded := w.boundaries != nil && w.boundaries.end.parent == parent
			if bounded {
				end = w.boundaries.end.offset
			}
			next := Position{parent: parent, offset: end}
			if !bounded && parent.parent != nil {
				next = mustPositionAfter(parent)
			}
			w.position = next
			return w.textValue(parent, pos.offset, end, pos, next), true
		}

		node := parent.childAt(pos.offset)
		if node == nil {
			if parent.parent == nil {
				return WalkerValue{}, false
			}
			w.position = mustPositionAfter(parent)
			if w.ignoreElementEnd {
				continue
			}
			return WalkerValue{Type: ValueElementEnd, Item: parent, PreviousPosition: pos, NextPosition: w.position}, true
		}

		if node.kind == KindText {
			end := node.length()
			next := Position{parent: parent, offset: pos.offset + 1}
			if w.boundaries != nil && w.boundaries.end.parent == node {
				end = w.boundaries.end.offset
				next = Position{parent: node, offset: end}
			}
			w.position = next
			return w.textValue(node, 0, end, pos, next), true
		}

		if w.shallow {
			w.position = Position{parent: parent, offset: pos.offset + 1}
		} else {
			w.position = Position{parent: node}
		}
		return WalkerValue{Type: ValueElementStart, Item: node, PreviousPosition: pos, NextPosition: w.position, Length: 1}, true
	}
}

func (w *TreeWalker) previous() (WalkerValue, bool) {
	for {
		pos := w.position
		if w.boundaries != nil && pos.IsEqual(w.boundaries.start) {
			return WalkerValue{}, false
		}
		parent := pos.parent

		if parent.kind == KindText {
			if pos.IsAtStart() {
				if parent.parent == nil {
					return WalkerValue{}, false
				}
				w.position = mustPositionBefore(parent)
				continue
			}
			start := 0
			bounded := w.boundaries != nil && w.boundaries.start.parent == parent
			if bounded {
				start = w.boundaries.start.offset
			}
			next := Position{parent: parent, offset: start}
			if !bounded && parent.parent != nil {
				next = mustPositionBefore(parent)
			}
			w.position = next
			return w.textValue(parent, start, pos.offset, pos, next), true
		}

		node := parent.childAt(pos.offset - 1)
		if node == nil {
			if parent.parent == nil {
				return WalkerValue{}, false
			}
			w.position = mustPositionBefore(parent)
			return WalkerValue{Type: ValueElementStart, Item: parent, PreviousPosition: pos, NextPosition: w.position, Length: 1}, true
		}

		if node.kind == KindText {
			start := 0
			next := Position{parent: parent, offset: pos.offset - 1}
			if w.boundaries != nil && w.boundaries.start.parent == node {
				start = w.boundaries.start.offset
				next = Position{parent: node, offset: start}
			}
			w.position = next
			return w.textValue(node, start, node.length(), pos, next), true
		}

		if w.shallow {
			w.position = Position{parent: parent, offset: pos.offset - 1}
			return WalkerValue{Type: ValueElementStart, Item: node, PreviousPosition: pos, NextPosition: w.position, Length: 1}, true
		}
		w.position = Position{parent: node, offset: node.length()}
		if w.ignoreElementEnd {
			continue
		}
		return WalkerValue{Type: ValueElementEnd, Item: node, PreviousPosition: pos, NextPosition: w.position}, true
	}
}

func (w *TreeWalker) textValue(text *Node, start, end int, previous, next Position) WalkerValue {
	return WalkerValue{
		Type:             ValueText,
		Item:             text,
		Data:             substring(text.data, start, end),
		PreviousPosition: previous,
		NextPosition:     next,
		Length:           end - start,
	}
}

func mustPositionAfter(node *Node) Position {
	return Position{parent: node.parent, offset: node.Index() + 1}
}

func mustPositionBefore(node *Node) Position {
	return Position{parent: node.parent, offset: node.Index()}
}
