package view

import (
	"testing"
)

func TestNewRange_SwapsReversed(t *testing.T) {
	tr := buildTree(t)
	a := pos(t, tr.foo.AsNode(), 1)
	b := pos(t, tr.baz.AsNode(), 2)

	r := NewRange(b, a)
	if !r.Start().IsEqual(a) || !r.End().IsEqual(b) {
		t.Error("NewRange should order its boundaries")
	}
	if r.IsCollapsed() || r.IsFlat() {
		t.Error("range should be neither collapsed nor flat")
	}
	if r.CommonAncestor() != tr.root.AsNode() {
		t.Error("common ancestor should be the root")
	}
	if r.Root() != tr.root.AsNode() {
		t.Error("Root should be the tree root")
	}
}

func TestRangeOnAndIn(t *testing.T) {
	tr := buildTree(t)

	on, err := RangeOn(tr.b.AsNode())
	if err != nil {
		t.Fatalf("RangeOn failed: %v", err)
	}
	if on.Start().Offset() != 1 || on.End().Offset() != 2 || !on.IsFlat() {
		t.Errorf("unexpected RangeOn %v", on)
	}
	if on.ContainedElement() != tr.b {
		t.Error("RangeOn should contain the element")
	}

	in := RangeIn(tr.p1.AsNode())
	if in.Start().Offset() != 0 || in.End().Offset() != 2 {
		t.Errorf("unexpected RangeIn %v", in)
	}
	if in.ContainedElement() != nil {
		t.Error("RangeIn over two children contains no single element")
	}

	if _, err := RangeOn(tr.root.AsNode()); err == nil {
		t.Error("RangeOn a parentless node should fail")
	}
}

func TestRange_Contains(t *testing.T) {
	tr := buildTree(t)
	r := RangeIn(tr.p1.AsNode())

	if !r.ContainsPosition(pos(t, tr.foo.AsNode(), 1)) {
		t.Error("position inside should be contained")
	}
	if r.ContainsPosition(r.Start()) {
		t.Error("boundaries are not strictly contained")
	}

	inner := NewRange(pos(t, tr.foo.AsNode(), 0), pos(t, tr.bar.AsNode(), 1))
	if !r.ContainsRange(inner, false) {
		t.Error("inner range should be contained")
	}
	if r.ContainsRange(r, false) {
		t.Error("a range does not strictly contain itself")
	}
	if !r.ContainsRange(r, true) {
		t.Error("a range loosely contains itself")
	}
	collapsed := CollapsedRange(r.Start())
	if r.ContainsRange(collapsed, true) {
		t.Error("a collapsed range at the boundary is never contained")
	}
}

func TestRange_IsIntersecting(t *testing.T) {
	tr := buildTree(t)
	a := NewRange(pos(t, tr.foo.AsNode(), 0), pos(t, tr.foo.AsNode(), 2))
	b := NewRange(pos(t, tr.foo.AsNode(), 1), pos(t, tr.bar.AsNode(), 1))
	c := NewRange(pos(t, tr.foo.AsNode(), 2), pos(t, tr.foo.AsNode(), 3))

	if !a.IsIntersecting(b) || !b.IsIntersecting(a) {
		t.Error("overlapping ranges intersect")
	}
	if a.IsIntersecting(c) || c.IsIntersecting(a) {
		t.Error("touching ranges do not intersect")
	}
}

func TestRange_Trimmed(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateContainerElement("p", nil)
	b := doc.CreateAttributeElement("b", nil)
	foo := doc.CreateText("foo")
	ui := doc.CreateUIElement("span", nil, nil)
	mustAppend(t, b, foo.AsNode())
	mustAppend(t, p, b.AsNode(), ui.AsNode())

	trimmed := RangeIn(p.AsNode()).Trimmed()
	if trimmed.Start().Parent() != foo.AsNode() || trimmed.Start().Offset() != 0 {
		t.Errorf("trimmed start = %v", trimmed.Start())
	}
	if trimmed.End().Parent() != foo.AsNode() || trimmed.End().Offset() != 3 {
		t.Errorf("trimmed end = %v", trimmed.End())
	}

	empty := doc.CreateContainerElement("p", nil)
	u := doc.CreateUIElement("span", nil, nil)
	mustAppend(t, empty, u.AsNode())
	if got := RangeIn(empty.AsNode()).Trimmed(); !got.IsCollapsed() {
		t.Errorf("a range over UI elements only trims to a collapsed range, got %v", got)
	}
}

func TestRange_Enlarged(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateContainerElement("p", nil)
	b := doc.CreateAttributeElement("b", nil)
	foo := doc.CreateText("foo")
	mustAppend(t, b, foo.AsNode())
	mustAppend(t, p, b.AsNode())

	enlarged := NewRange(PositionAtStart(foo.AsNode()), PositionAtEnd(foo.AsNode())).Enlarged()
	if enlarged.Start().Parent() != p.AsNode() || enlarged.Start().Offset() != 0 {
		t.Errorf("enlarged start = %v", enlarged.Start())
	}
	if enlarged.End().Parent() != p.AsNode() || enlarged.End().Offset() != 1 {
		t.Errorf("enlarged end = %v", enlarged.End())
	}
}

func TestRange_ContainedElementAtTextEdges(t *testing.T) {
	tr := buildTree(t)
	// {foo}<b> ... from the end of foo to the end of p1 selects b.
	r := NewRange(PositionAtEnd(tr.foo.AsNode()), PositionAtEnd(tr.p1.AsNode()))
	if r.ContainedElement() != tr.b {
		t.Error("a boundary at the end of a text node counts as after it")
	}
}

func TestRange_Items(t *testing.T) {
	tr := buildTree(t)
	items := RangeIn(tr.p1.AsNode()).Items()
	want := []*Node{tr.foo.AsNode(), tr.b.AsNode(), tr.bar.AsNode()}
	if len(items) != len(want) {
		t.Fatalf("Items = %v", items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %v, want %v", i, items[i], want[i])
		}
	}
}

func TestRange_ItemsInsideOneText(t *testing.T) {
	tr := buildTree(t)
	items := NewRange(pos(t, tr.foo.AsNode(), 1), pos(t, tr.foo.AsNode(), 3)).Items()
	if len(items) != 1 || items[0] != tr.foo.AsNode() {
		t.Errorf("Items = %v, want only foo", items)
	}
}

func TestTreeWalker(t *testing.T) {
	tr := buildTree(t)
	r := NewRange(pos(t, tr.foo.AsNode(), 1), pos(t, tr.bar.AsNode(), 2))

	values := r.Walker(Forward, false).All()
	want := []struct {
		typ  WalkerValueType
		item *Node
		data string
	}{
		{ValueText, tr.foo.AsNode(), "oo"},
		{ValueElementStart, tr.b.AsNode(), ""},
		{ValueText, tr.bar.AsNode(), "ba"},
	}
	if len(values) != len(want) {
		t.Fatalf("got %d values: %+v", len(values), values)
	}
	for i, w := range want {
		if values[i].Type != w.typ || values[i].Item != w.item || values[i].Data != w.data {
			t.Errorf("value %d = %v %v %q, want %v %v %q", i, values[i].Type, values[i].Item.Kind(), values[i].Data, w.typ, w.item.Kind(), w.data)
		}
	}

	back := r.Walker(Backward, false).All()
	if len(back) != 3 {
		t.Fatalf("backward walk got %d values", len(back))
	}
	if back[0].Type != ValueText || back[0].Data != "ba" || back[1].Type != ValueElementStart || back[1].Item != tr.b.AsNode() {
		t.Errorf("unexpected backward values %+v", back[:2])
	}
	if back[2].Type != ValueText || back[2].Data != "oo" {
		t.Errorf("unexpected backward value %+v", back[2])
	}

	// Entering b from its end yields an elementEnd step.
	full := RangeIn(tr.p1.AsNode()).Walker(Backward, false).All()
	if len(full) != 4 || full[0].Type != ValueElementEnd || full[0].Item != tr.b.AsNode() {
		t.Errorf("unexpected backward walk over p1 %+v", full)
	}
}

func TestTreeWalker_BoundaryAtTextEdge(t *testing.T) {
	tr := buildTree(t)
	tests := []struct {
		name      string
		r         Range
		direction Direction
		data      string
	}{
		{"forward to text end", NewRange(pos(t, tr.foo.AsNode(), 1), pos(t, tr.foo.AsNode(), 3)), Forward, "oo"},
		{"backward to text start", NewRange(pos(t, tr.bar.AsNode(), 0), pos(t, tr.bar.AsNode(), 2)), Backward, "ba"},
		{"whole text forward", NewRange(pos(t, tr.baz.AsNode(), 0), pos(t, tr.baz.AsNode(), 3)), Forward, "baz"},
		{"whole text backward", NewRange(pos(t, tr.baz.AsNode(), 0), pos(t, tr.baz.AsNode(), 3)), Backward, "baz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walker := tt.r.Walker(tt.direction, false)
			values := walker.All()
			if len(values) != 1 {
				t.Fatalf("got %d values: %+v", len(values), values)
			}
			if values[0].Type != ValueText || values[0].Data != tt.data {
				t.Errorf("got %v %q, want text %q", values[0].Type, values[0].Data, tt.data)
			}
			want := tt.r.End()
			if tt.direction == Backward {
				want = tt.r.Start()
			}
			if !walker.Position().IsEqual(want) {
				t.Errorf("walker stopped at %v, want %v", walker.Position(), want)
			}
		})
	}
}

func TestTreeWalker_Shallow(t *testing.T) {
	tr := buildTree(t)
	values := RangeIn(tr.root.AsNode()).Walker(Forward, true).All()
	if len(values) != 2 || values[0].Item != tr.p1.AsNode() || values[1].Item != tr.p2.AsNode() {
		t.Errorf("shallow walk = %+v", values)
	}
}

func TestTreeWalker_NeedsStart(t *testing.T) {
	if _, err := NewTreeWalker(WalkerOptions{}); err == nil {
		t.Error("a walker without boundaries or start should fail")
	}
}
