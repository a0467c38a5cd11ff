package view

import (
	"errors"
	"testing"
)

func TestEditable_ReadOnlyMirrorsDocument(t *testing.T) {
	doc := NewDocument(WithReadOnly(true))
	root, err := doc.CreateRoot("div", "")
	if err != nil {
		t.Fatal(err)
	}
	if !root.IsReadOnly() {
		t.Error("a root created in a read-only document starts read-only")
	}

	nested := doc.CreateEditableElement("figcaption", nil)
	var events int
	nested.AsNode().On("change:isReadOnly", func(*EventInfo, ...any) { events++ })

	doc.SetReadOnly(false)
	if root.IsReadOnly() || nested.IsReadOnly() {
		t.Error("editable elements should follow the document")
	}
	if events != 1 {
		t.Errorf("expected one change:isReadOnly event, got %d", events)
	}

	p := doc.CreateContainerElement("p", nil)
	if p.IsReadOnly() || p.IsFocused() {
		t.Error("non-editable elements are never read-only or focused")
	}
}

func TestEditable_IsFocused(t *testing.T) {
	tr := buildTree(t)
	nested := tr.doc.CreateEditableElement("figcaption", nil)
	caption := tr.doc.CreateText("caption")
	mustAppend(t, nested, caption.AsNode())
	mustAppend(t, tr.root, nested.AsNode())
	writer := tr.doc.SelectionWriter()

	if err := writer.SetToPosition(pos(t, tr.foo.AsNode(), 1), SelectionOptions{}); err != nil {
		t.Fatal(err)
	}
	if tr.root.IsFocused() {
		t.Error("an unfocused document has no focused editable")
	}

	tr.doc.SetFocused(true)
	if !tr.root.IsFocused() || nested.IsFocused() {
		t.Error("the root should be focused once the document is")
	}

	if err := writer.SetToPosition(pos(t, caption.AsNode(), 2), SelectionOptions{}); err != nil {
		t.Fatal(err)
	}
	if tr.root.IsFocused() || !nested.IsFocused() {
		t.Error("focus should move to the innermost editable of the selection")
	}

	tr.doc.SetFocused(false)
	if nested.IsFocused() {
		t.Error("blurring the document blurs its editables")
	}
}

func TestEditable_Destroy(t *testing.T) {
	doc := NewDocument()
	root, err := doc.CreateRoot("div", "")
	if err != nil {
		t.Fatal(err)
	}
	text := doc.CreateText("foo")
	mustAppend(t, root, text.AsNode())
	if err := doc.SelectionWriter().SetToPosition(pos(t, text.AsNode(), 1), SelectionOptions{}); err != nil {
		t.Fatal(err)
	}
	doc.SetFocused(true)
	if !root.IsFocused() {
		t.Fatal("the root should be focused before it is destroyed")
	}

	root.Destroy()
	root.Destroy()

	if root.IsFocused() {
		t.Error("a destroyed editable is no longer focused")
	}
	if len(doc.editables) != 0 {
		t.Errorf("the document still tracks %d editables", len(doc.editables))
	}
	doc.SetReadOnly(true)
	doc.SetFocused(false)
	doc.SetFocused(true)
	if root.IsReadOnly() || root.IsFocused() {
		t.Error("a destroyed editable no longer follows the document")
	}
}

func TestDocument_CreateRoot(t *testing.T) {
	doc := NewDocument()
	mainRoot, err := doc.CreateRoot("div", "")
	if err != nil {
		t.Fatal(err)
	}
	if mainRoot.RootName() != DefaultRootName || doc.Root("") != mainRoot {
		t.Error("an unnamed root is registered as the default root")
	}
	if _, err := doc.CreateRoot("div", DefaultRootName); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected InvalidStateError for a duplicate root, got %v", err)
	}
	title, err := doc.CreateRoot("h1", "title")
	if err != nil {
		t.Fatal(err)
	}
	roots := doc.Roots()
	if len(roots) != 2 || roots[1] != title || doc.Root("title") != title {
		t.Errorf("unexpected roots %v", roots)
	}
	if doc.Root("missing") != nil {
		t.Error("an unknown root name returns nil")
	}
}

func TestDocument_Composing(t *testing.T) {
	doc := NewDocument()
	var got []any
	doc.On("change", func(evt *EventInfo, args ...any) {
		got = append(got, evt.Name)
	})
	doc.SetComposing(true)
	doc.SetComposing(true)
	if !doc.IsComposing() || len(got) != 1 || got[0] != "change:isComposing" {
		t.Errorf("unexpected composition events %v", got)
	}
}

func TestDocument_Destroy(t *testing.T) {
	doc := NewDocument()
	root, err := doc.CreateRoot("div", "")
	if err != nil {
		t.Fatal(err)
	}
	nested := doc.CreateEditableElement("figcaption", nil)
	doc.Destroy()

	doc.SetReadOnly(true)
	if root.IsReadOnly() || nested.IsReadOnly() {
		t.Error("Destroy should release every editable element")
	}
}
