package view

import "testing"

type fakeSelection struct {
	collapsed   bool
	focusNode   NativeNode
	focusOffset int
	calls       []string
}

func (s *fakeSelection) RangeCount() int       { return 1 }
func (s *fakeSelection) IsCollapsed() bool     { return s.collapsed }
func (s *fakeSelection) FocusNode() NativeNode { return s.focusNode }
func (s *fakeSelection) FocusOffset() int      { return s.focusOffset }

func (s *fakeSelection) Collapse(node NativeNode, offset int) {
	s.calls = append(s.calls, "collapse")
	s.focusNode, s.focusOffset = node, offset
}

func (s *fakeSelection) Extend(node NativeNode, offset int) {
	s.calls = append(s.calls, "extend")
	s.focusNode, s.focusOffset = node, offset
}

// identityConverter uses view nodes as native nodes.
type identityConverter struct{}

func (identityConverter) DomPositionToView(node NativeNode, offset int) (Position, bool) {
	n, ok := node.(*Node)
	if !ok {
		return Position{}, false
	}
	pos, err := NewPosition(n, offset)
	return pos, err == nil
}

func (identityConverter) ViewPositionToDom(pos Position) (NativeNode, int, bool) {
	return pos.Parent(), pos.Offset(), true
}

func TestInjectUIElementHandling(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateContainerElement("p", nil)
	foo := doc.CreateText("foo")
	ui := doc.CreateUIElement("span", nil, nil)
	bar := doc.CreateText("bar")
	mustAppend(t, p, foo.AsNode(), ui.AsNode(), bar.AsNode())
	listener := InjectUIElementHandling(doc, identityConverter{})

	tests := []struct {
		name       string
		collapsed  bool
		key        KeyEventData
		wantNode   *Node
		wantOffset int
		wantCalls  int
	}{
		{"collapsed jumps", true, KeyEventData{KeyCode: KeyArrowRight}, p.AsNode(), 2, 1},
		{"shift extends", false, KeyEventData{KeyCode: KeyArrowRight, ShiftKey: true}, p.AsNode(), 2, 1},
		{"expanded without shift", false, KeyEventData{KeyCode: KeyArrowRight}, foo.AsNode(), 3, 0},
		{"other key", true, KeyEventData{KeyCode: KeyArrowLeft}, foo.AsNode(), 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := &fakeSelection{collapsed: tt.collapsed, focusNode: foo.AsNode(), focusOffset: 3}
			key := tt.key
			key.DomSelection = sel
			doc.Bubbling().Fire("arrowKey", &key)

			if sel.focusNode != tt.wantNode || sel.focusOffset != tt.wantOffset {
				t.Errorf("focus = %v:%d", sel.focusNode, sel.focusOffset)
			}
			if len(sel.calls) != tt.wantCalls {
				t.Errorf("calls = %v", sel.calls)
			}
			if tt.wantCalls == 1 && tt.collapsed != (sel.calls[0] == "collapse") {
				t.Errorf("unexpected call %v", sel.calls)
			}
		})
	}

	listener.Off()
	sel := &fakeSelection{collapsed: true, focusNode: foo.AsNode(), focusOffset: 3}
	doc.Bubbling().Fire("arrowKey", &KeyEventData{KeyCode: KeyArrowRight, DomSelection: sel})
	if len(sel.calls) != 0 {
		t.Error("a removed handler should not move the selection")
	}
}

func TestInjectUIElementHandling_NoUIElement(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateContainerElement("p", nil)
	b := doc.CreateAttributeElement("b", nil)
	foo := doc.CreateText("foo")
	bar := doc.CreateText("bar")
	mustAppend(t, b, bar.AsNode())
	mustAppend(t, p, foo.AsNode(), b.AsNode())
	InjectUIElementHandling(doc, identityConverter{})

	sel := &fakeSelection{collapsed: true, focusNode: foo.AsNode(), focusOffset: 3}
	doc.Bubbling().Fire("arrowKey", &KeyEventData{KeyCode: KeyArrowRight, DomSelection: sel})
	if len(sel.calls) != 0 {
		t.Error("attribute elements alone do not trigger a jump")
	}
}
