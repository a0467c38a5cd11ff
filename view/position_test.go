package view

import (
	"errors"
	"testing"
)

func pos(t *testing.T, parent *Node, offset int) Position {
	t.Helper()
	p, err := NewPosition(parent, offset)
	if err != nil {
		t.Fatalf("NewPosition failed: %v", err)
	}
	return p
}

func TestNewPosition(t *testing.T) {
	tr := buildTree(t)

	if _, err := NewPosition(tr.foo.AsNode(), 4); !errors.Is(err, ErrIndexSize) {
		t.Errorf("expected ErrIndexSize, got %v", err)
	}
	if _, err := NewPosition(tr.p1.AsNode(), -1); !errors.Is(err, ErrIndexSize) {
		t.Errorf("expected ErrIndexSize, got %v", err)
	}
	if _, err := NewPosition(nil, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := PositionBefore(tr.root.AsNode()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	before, err := PositionBefore(tr.b.AsNode())
	if err != nil || before.Parent() != tr.p1.AsNode() || before.Offset() != 1 {
		t.Errorf("PositionBefore(b) = %v, %v", before, err)
	}
	after, err := PositionAfter(tr.b.AsNode())
	if err != nil || after.Offset() != 2 {
		t.Errorf("PositionAfter(b) = %v, %v", after, err)
	}
	if PositionAtEnd(tr.foo.AsNode()).Offset() != 3 {
		t.Error("PositionAtEnd of text counts characters")
	}
}

func TestPosition_Nodes(t *testing.T) {
	tr := buildTree(t)
	p := pos(t, tr.p1.AsNode(), 1)

	if p.NodeBefore() != tr.foo.AsNode() || p.NodeAfter() != tr.b.AsNode() {
		t.Error("NodeBefore/NodeAfter are wrong")
	}
	inText := pos(t, tr.foo.AsNode(), 1)
	if inText.NodeBefore() != nil || inText.NodeAfter() != nil {
		t.Error("positions inside text have no adjacent nodes")
	}
	if !pos(t, tr.p1.AsNode(), 0).IsAtStart() || !pos(t, tr.p1.AsNode(), 2).IsAtEnd() {
		t.Error("IsAtStart/IsAtEnd are wrong")
	}
	if got := inText.ShiftedBy(10); got.Offset() != 3 {
		t.Errorf("ShiftedBy should clamp, got %d", got.Offset())
	}
	if got := inText.ShiftedBy(-10); got.Offset() != 0 {
		t.Errorf("ShiftedBy should clamp, got %d", got.Offset())
	}
}

func TestPosition_CompareWith(t *testing.T) {
	tr := buildTree(t)

	tests := []struct {
		name string
		a, b Position
		want Relation
	}{
		{"same", pos(t, tr.p1.AsNode(), 1), pos(t, tr.p1.AsNode(), 1), RelationSame},
		{"same parent", pos(t, tr.p1.AsNode(), 0), pos(t, tr.p1.AsNode(), 2), RelationBefore},
		{"before text", pos(t, tr.p1.AsNode(), 0), pos(t, tr.foo.AsNode(), 0), RelationBefore},
		{"after text", pos(t, tr.p1.AsNode(), 1), pos(t, tr.foo.AsNode(), 3), RelationAfter},
		{"inside text", pos(t, tr.foo.AsNode(), 1), pos(t, tr.foo.AsNode(), 2), RelationBefore},
		{"deeper later", pos(t, tr.bar.AsNode(), 0), pos(t, tr.root.AsNode(), 1), RelationBefore},
		{"different trees", pos(t, tr.p1.AsNode(), 0), pos(t, tr.doc.CreateText("x").AsNode(), 0), RelationDifferent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CompareWith(tt.b); got != tt.want {
				t.Errorf("CompareWith = %v, want %v", got, tt.want)
			}
		})
	}

	a := pos(t, tr.p1.AsNode(), 0)
	b := pos(t, tr.p2.AsNode(), 0)
	if !a.IsBefore(b) || !b.IsAfter(a) || a.IsAfter(b) {
		t.Error("IsBefore/IsAfter are wrong")
	}
}

func TestPosition_EditableElement(t *testing.T) {
	tr := buildTree(t)
	nested := tr.doc.CreateEditableElement("div", nil)
	text := tr.doc.CreateText("x")
	mustAppend(t, nested, text.AsNode())
	mustAppend(t, tr.p2, nested.AsNode())

	if got := pos(t, tr.bar.AsNode(), 1).EditableElement(); got != tr.root {
		t.Errorf("EditableElement = %v, want root", got)
	}
	if got := pos(t, text.AsNode(), 0).EditableElement(); got != nested {
		t.Errorf("EditableElement = %v, want the innermost editable", got)
	}
	if got := pos(t, tr.doc.CreateContainerElement("p", nil).AsNode(), 0).EditableElement(); got != nil {
		t.Errorf("EditableElement = %v, want nil", got)
	}
}

func TestPosition_CommonAncestor(t *testing.T) {
	tr := buildTree(t)
	if got := pos(t, tr.foo.AsNode(), 1).CommonAncestor(pos(t, tr.bar.AsNode(), 1)); got != tr.p1.AsNode() {
		t.Errorf("CommonAncestor = %v, want p1", got)
	}
	if got := pos(t, tr.p1.AsNode(), 0).CommonAncestor(pos(t, tr.bar.AsNode(), 1)); got != tr.p1.AsNode() {
		t.Errorf("CommonAncestor = %v, want p1", got)
	}
}

func TestPosition_LastMatchingPosition(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateContainerElement("p", nil)
	foo := doc.CreateText("foo")
	ui1 := doc.CreateUIElement("span", nil, nil)
	b := doc.CreateAttributeElement("b", nil)
	ui2 := doc.CreateUIElement("span", nil, nil)
	bar := doc.CreateText("bar")
	mustAppend(t, b, ui2.AsNode())
	mustAppend(t, p, foo.AsNode(), ui1.AsNode(), b.AsNode(), bar.AsNode())

	skip := func(v WalkerValue) bool {
		return v.Item.Kind() == KindUI || v.Item.Kind() == KindAttribute
	}

	got := PositionAtEnd(foo.AsNode()).LastMatchingPosition(skip, Forward)
	if got.Parent() != p.AsNode() || got.Offset() != 3 {
		t.Errorf("forward = %v:%d, want p:3", got.Parent().Kind(), got.Offset())
	}

	got = pos(t, p.AsNode(), 3).LastMatchingPosition(skip, Backward)
	if got.Parent() != p.AsNode() || got.Offset() != 1 {
		t.Errorf("backward = %v:%d, want p:1", got.Parent().Kind(), got.Offset())
	}

	start := pos(t, bar.AsNode(), 1)
	if got := start.LastMatchingPosition(skip, Forward); !got.IsEqual(start) {
		t.Error("nothing should be skipped inside text")
	}
}
