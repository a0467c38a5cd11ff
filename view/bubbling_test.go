package view

import (
	"reflect"
	"strings"
	"testing"
)

func recordBubbling(b *BubblingEmitter, log *[]string, label string, opts ListenOptions) *BubblingListener {
	return b.On("keydown", func(info *BubblingEventInfo, data any) {
		target := "nil"
		if node := info.CurrentTarget(); node != nil {
			target = node.Kind().String()
			if el := node.AsElement(); el != nil {
				target = el.Name()
			}
		}
		*log = append(*log, label+"@"+target+":"+info.EventPhase().String())
	}, opts)
}

func TestBubbling_PhaseOrder(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()
	var log []string

	recordBubbling(b, &log, "bubble", ListenOptions{Phase: EventPhaseBubbling, Context: ContextName("p")})
	recordBubbling(b, &log, "target", ListenOptions{})
	recordBubbling(b, &log, "capture", ListenOptions{Phase: EventPhaseCapturing, Context: ContextRoot()})

	start := CollapsedRange(pos(t, tr.bar.AsNode(), 1))
	b.FireFrom("keydown", start, nil)

	want := []string{
		"capture@div:capturing",
		"target@$text:atTarget",
		"bubble@p:bubbling",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestBubbling_Path(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()

	onB, err := RangeOn(tr.b.AsNode())
	if err != nil {
		t.Fatal(err)
	}
	path := b.Path(onB)
	want := []*Node{tr.b.AsNode(), tr.p1.AsNode(), tr.root.AsNode()}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path of a selected element = %v", path)
	}

	across := NewRange(pos(t, tr.p1.AsNode(), 0), pos(t, tr.bar.AsNode(), 1))
	if got := b.Path(across); got[0] != tr.bar.AsNode() {
		t.Error("the deeper boundary parent starts the path")
	}

	b.SetBoundary(func(n *Node) bool { return n.Is(TagElement, "p") })
	if got := b.Path(onB); len(got) != 2 || got[1] != tr.p1.AsNode() {
		t.Errorf("path should end at the boundary, got %v", got)
	}
	if b.Path(Range{}) != nil {
		t.Error("an unset range has no path")
	}
}

func TestBubbling_StopInCapture(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()
	var log []string

	b.On("keydown", func(info *BubblingEventInfo, data any) {
		log = append(log, "capture")
		info.Stop()
	}, ListenOptions{Phase: EventPhaseCapturing})
	recordBubbling(b, &log, "target", ListenOptions{})
	recordBubbling(b, &log, "bubble", ListenOptions{Phase: EventPhaseBubbling})

	info := b.FireFrom("keydown", CollapsedRange(pos(t, tr.foo.AsNode(), 0)), nil)
	if !info.Stopped() || len(log) != 1 {
		t.Errorf("stopping in capture should end the dispatch, got %v", log)
	}
}

func TestBubbling_PriorityAndContext(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()
	var log []string

	recordBubbling(b, &log, "low", ListenOptions{Phase: EventPhaseBubbling, Priority: PriorityLow, Context: ContextName("p")})
	recordBubbling(b, &log, "high", ListenOptions{Phase: EventPhaseBubbling, Priority: PriorityHigh, Context: ContextName("p")})
	recordBubbling(b, &log, "b", ListenOptions{Phase: EventPhaseBubbling, Context: ContextFunc(func(e *Element) bool {
		return e.Kind() == KindAttribute
	})})
	recordBubbling(b, &log, "text", ListenOptions{Phase: EventPhaseBubbling, Context: ContextText()})

	b.FireFrom("keydown", CollapsedRange(pos(t, tr.bar.AsNode(), 1)), nil)
	want := []string{
		"text@$text:bubbling",
		"b@b:bubbling",
		"high@p:bubbling",
		"low@p:bubbling",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestBubbling_ReturnAndData(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()
	b.On("enter", func(info *BubblingEventInfo, data any) {
		info.Return = strings.ToUpper(data.(string))
		info.Stop()
	}, ListenOptions{Phase: EventPhaseBubbling, Context: ContextRoot()})

	if err := tr.doc.SelectionWriter().SetToPosition(pos(t, tr.baz.AsNode(), 1), SelectionOptions{}); err != nil {
		t.Fatal(err)
	}
	info := b.Fire("enter", "data")
	if info.Return != "DATA" {
		t.Errorf("Return = %v", info.Return)
	}
	if info.Source() != tr.doc || info.Name() != "enter" {
		t.Error("the document fires bubbling events")
	}
	if r, ok := info.StartRange(); !ok || !r.Start().IsEqual(pos(t, tr.baz.AsNode(), 1)) {
		t.Error("Fire starts at the document selection")
	}
}

func TestBubbling_NoSelection(t *testing.T) {
	doc := NewDocument()
	b := doc.Bubbling()
	var log []string
	recordBubbling(b, &log, "any", ListenOptions{})
	recordBubbling(b, &log, "root", ListenOptions{Context: ContextRoot()})
	recordBubbling(b, &log, "bubble", ListenOptions{Phase: EventPhaseBubbling})

	b.Fire("keydown", nil)
	if !reflect.DeepEqual(log, []string{"any@nil:atTarget"}) {
		t.Errorf("only context-free target listeners run without a path, got %v", log)
	}
}

func TestBubbling_Off(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()
	var log []string
	l := recordBubbling(b, &log, "target", ListenOptions{Phase: EventPhaseAtTarget})
	l.Off()
	l.Off()
	b.FireFrom("keydown", CollapsedRange(pos(t, tr.foo.AsNode(), 0)), nil)
	if len(log) != 0 {
		t.Errorf("a removed listener ran: %v", log)
	}
}

func TestBubbling_DefaultPriority(t *testing.T) {
	tr := buildTree(t)
	b := tr.doc.Bubbling()
	var log []string

	recordBubbling(b, &log, "low", ListenOptions{Priority: PriorityLow})
	recordBubbling(b, &log, "unset", ListenOptions{})
	recordBubbling(b, &log, "normal", ListenOptions{Priority: PriorityNormal})
	recordBubbling(b, &log, "high", ListenOptions{Priority: PriorityHigh})

	b.FireFrom("keydown", CollapsedRange(pos(t, tr.foo.AsNode(), 0)), nil)
	want := []string{
		"high@$text:atTarget",
		"unset@$text:atTarget",
		"normal@$text:atTarget",
		"low@$text:atTarget",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("an unset priority should rank as normal: got %v, want %v", log, want)
	}
}
