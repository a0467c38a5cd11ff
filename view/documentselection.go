package view

// DocumentSelection is the read-only selection of a Document. It is changed
// through the document's SelectionWriter and re-fires every "change" of the
// selection it wraps.
type DocumentSelection struct {
	doc       *Document
	selection *Selection
	emitter   *Emitter
}

func newDocumentSelection(d *Document) *DocumentSelection {
	ds := &DocumentSelection{doc: d, selection: NewSelection()}
	ds.emitter = newEmitter(ds)
	ds.selection.emitter.Delegate(ds.emitter, "change")
	return ds
}

func (ds *DocumentSelection) selectionState() *Selection {
	return ds.selection
}

// On registers a listener for the "change" event.
func (ds *DocumentSelection) On(event string, callback Callback, opts ...ListenOption) *Listener {
	return ds.emitter.On(event, callback, opts...)
}

// IsFake reports whether the selection is fake.
func (ds *DocumentSelection) IsFake() bool { return ds.selection.IsFake() }

// FakeSelectionLabel returns the label of a fake selection.
func (ds *DocumentSelection) FakeSelectionLabel() string { return ds.selection.FakeSelectionLabel() }

// RangeCount returns the number of ranges.
func (ds *DocumentSelection) RangeCount() int { return ds.selection.RangeCount() }

// Ranges returns a copy of the ranges.
func (ds *DocumentSelection) Ranges() []Range { return ds.selection.Ranges() }

// IsCollapsed reports whether the selection is one collapsed range.
func (ds *DocumentSelection) IsCollapsed() bool { return ds.selection.IsCollapsed() }

// IsBackward reports whether the selection is backward.
func (ds *DocumentSelection) IsBackward() bool { return ds.selection.IsBackward() }

// Anchor returns the anchor position.
func (ds *DocumentSelection) Anchor() (Position, bool) { return ds.selection.Anchor() }

// Focus returns the focus position.
func (ds *DocumentSelection) Focus() (Position, bool) { return ds.selection.Focus() }

// FirstRange returns the first range in document order.
func (ds *DocumentSelection) FirstRange() (Range, bool) { return ds.selection.FirstRange() }

// LastRange returns the last range in document order.
func (ds *DocumentSelection) LastRange() (Range, bool) { return ds.selection.LastRange() }

// FirstPosition returns the start of the first range.
func (ds *DocumentSelection) FirstPosition() (Position, bool) { return ds.selection.FirstPosition() }

// LastPosition returns the end of the last range.
func (ds *DocumentSelection) LastPosition() (Position, bool) { return ds.selection.LastPosition() }

// SelectedElement returns the element selected by a single range, or nil.
func (ds *DocumentSelection) SelectedElement() *Element { return ds.selection.SelectedElement() }

// EditableElement returns the innermost editable element of the anchor.
func (ds *DocumentSelection) EditableElement() *Element { return ds.selection.EditableElement() }

// IsEqual compares with another selection.
func (ds *DocumentSelection) IsEqual(other Selector) bool { return ds.selection.IsEqual(other) }

// IsSimilar compares the trimmed ranges with another selection.
func (ds *DocumentSelection) IsSimilar(other Selector) bool { return ds.selection.IsSimilar(other) }

// String formats the selection.
func (ds *DocumentSelection) String() string { return ds.selection.String() }

// SelectionWriter is the single privileged entry point that changes a
// document selection. Ranges must belong to the writer's document.
type SelectionWriter struct {
	selection *DocumentSelection
}

// SetToRanges replaces the ranges of the document selection.
func (w *SelectionWriter) SetToRanges(ranges []Range, opts SelectionOptions) error {
	for _, r := range ranges {
		if err := w.checkRange(r); err != nil {
			return err
		}
	}
	return w.selection.selection.SetToRanges(ranges, opts)
}

// SetToPosition collapses the document selection at pos.
func (w *SelectionWriter) SetToPosition(pos Position, opts SelectionOptions) error {
	if err := w.checkDocument(pos); err != nil {
		return err
	}
	return w.selection.selection.SetToPosition(pos, opts)
}

// SetToNode sets the document selection relative to node.
func (w *SelectionWriter) SetToNode(node *Node, placement Placement, opts SelectionOptions) error {
	if node != nil && node.doc != w.selection.doc {
		return errWrongDocument("The node belongs to another document.")
	}
	return w.selection.selection.SetToNode(node, placement, opts)
}

// SetToSelection copies another selection into the document selection.
func (w *SelectionWriter) SetToSelection(other Selector) error {
	o := other.selectionState()
	return w.SetToRanges(o.ranges, SelectionOptions{
		Backward: o.lastRangeBackward,
		Fake:     o.isFake,
		Label:    o.fakeLabel,
	})
}

// SetToNone clears the document selection.
func (w *SelectionWriter) SetToNone() {
	w.selection.selection.SetToNone()
}

// SetFocus moves the focus of the document selection.
func (w *SelectionWriter) SetFocus(pos Position) error {
	if err := w.checkDocument(pos); err != nil {
		return err
	}
	return w.selection.selection.SetFocus(pos)
}

// checkRange rejects ranges with a boundary in another document or with
// boundaries in different trees.
func (w *SelectionWriter) checkRange(r Range) error {
	if err := w.checkDocument(r.start); err != nil {
		return err
	}
	if err := w.checkDocument(r.end); err != nil {
		return err
	}
	if !r.IsZero() && r.start.CompareWith(r.end) == RelationDifferent {
		return errWrongDocument("The range boundaries are in different trees.")
	}
	return nil
}

func (w *SelectionWriter) checkDocument(pos Position) error {
	if pos.IsZero() {
		return nil
	}
	if pos.parent.doc != w.selection.doc {
		return errWrongDocument("The position belongs to another document.")
	}
	return nil
}
