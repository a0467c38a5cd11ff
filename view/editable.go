package view

import "go.uber.org/zap"

// DefaultRootName is the root name used when none is given.
const DefaultRootName = "main"

type editableData struct {
	isReadOnly *Observable[bool]
	isFocused  *Observable[bool]
	listeners  []*Listener
	destroyed  bool
}

type rootData struct {
	rootName string
	rendered bool
}

// bindEditable mirrors the document's read-only flag and tracks focus: the
// element is focused when the document is focused and the selection's
// innermost editable ancestor is this element.
func (d *Document) bindEditable(n *Node) {
	ed := &editableData{
		isReadOnly: newObservable(n.emitter, "isReadOnly", d.IsReadOnly()),
		isFocused:  newObservable(n.emitter, "isFocused", false),
	}
	n.editableData = ed

	element := (*Element)(n)
	updateFocus := func(*EventInfo, ...any) {
		ed.isFocused.Set(d.IsFocused() && d.selection.EditableElement() == element)
	}
	ed.listeners = append(ed.listeners,
		d.emitter.On("change:isReadOnly", func(*EventInfo, ...any) {
			ed.isReadOnly.Set(d.IsReadOnly())
		}),
		d.emitter.On("change:isFocused", updateFocus),
		d.selection.On("change", updateFocus),
	)
	d.editables = append(d.editables, n)
}

// IsReadOnly reports whether an editable element is read-only. It mirrors
// the document's flag. Non-editable elements return false.
func (e *Element) IsReadOnly() bool {
	if e.editableData == nil {
		return false
	}
	return e.editableData.isReadOnly.Get()
}

// IsFocused reports whether an editable element holds the document focus.
func (e *Element) IsFocused() bool {
	if e.editableData == nil {
		return false
	}
	return e.editableData.isFocused.Get()
}

// Destroy releases the document subscriptions of an editable element.
func (e *Element) Destroy() {
	ed := e.editableData
	if ed == nil || ed.destroyed {
		return
	}
	for _, l := range ed.listeners {
		l.Off()
	}
	ed.listeners = nil
	ed.destroyed = true
	ed.isFocused.Set(false)
	e.doc.forgetEditable(e.AsNode())
	e.doc.logger.Debug("editable element destroyed", zap.String("name", e.name))
}

// RootName returns the name under which a root is registered in its
// document, or "" for other elements.
func (e *Element) RootName() string {
	if e.rootData == nil {
		return ""
	}
	return e.rootData.rootName
}

// MarkRendered records that the root has been bound to the rendering
// surface. After that the root can no longer be renamed.
func (e *Element) MarkRendered() {
	if e.rootData != nil {
		e.rootData.rendered = true
	}
}

func (d *Document) forgetEditable(n *Node) {
	for i, editable := range d.editables {
		if editable == n {
			d.editables = append(d.editables[:i], d.editables[i+1:]...)
			return
		}
	}
}
