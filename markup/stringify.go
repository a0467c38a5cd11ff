package markup

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/chrisuehlinger/viewtree/view"
)

// Stringify prints node and its descendants as markup. Boundaries of the
// given ranges are printed as selection markers.
func Stringify(node *view.Node, ranges []view.Range, opts ...Option) string {
	o := newOptions(opts)
	s := &stringifier{opts: o, markers: make(map[view.Position]string)}
	s.addRanges(ranges)

	var b strings.Builder
	if o.ignoreRoot || node.Kind() == view.KindDocumentFragment {
		s.children(&b, node)
	} else {
		s.node(&b, node)
	}
	return b.String()
}

type stringifier struct {
	opts    *options
	markers map[view.Position]string
}

func (s *stringifier) addRanges(ranges []view.Range) {
	sorted := append([]view.Range(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start().IsBefore(sorted[j].Start())
	})
	for _, r := range sorted {
		s.addMarker(r.Start(), true)
		s.addMarker(r.End(), false)
	}
}

func (s *stringifier) addMarker(pos view.Position, open bool) {
	var m string
	switch {
	case pos.Parent().Kind() == view.KindText && open:
		m = "{"
	case pos.Parent().Kind() == view.KindText:
		m = "}"
	case open:
		m = "["
	default:
		m = "]"
	}
	s.markers[pos] = s.markers[pos] + m
}

func (s *stringifier) node(b *strings.Builder, node *view.Node) {
	if text := node.AsText(); text != nil {
		s.text(b, text)
		return
	}
	element := node.AsElement()
	if element == nil {
		s.children(b, node)
		return
	}

	name := element.Name()
	if s.opts.showType {
		name = prefixOf(element.Kind()) + ":" + name
	}
	b.WriteString("<")
	b.WriteString(name)
	s.attributes(b, element)
	b.WriteString(">")
	s.children(b, node)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func (s *stringifier) attributes(b *strings.Builder, element *view.Element) {
	if element.Kind() == view.KindAttribute {
		if s.opts.showPrio {
			writeAttribute(b, priorityAttribute, strconv.Itoa(element.Priority()))
		}
		if s.opts.showID && element.ID() != "" {
			writeAttribute(b, idAttribute, element.ID())
		}
	}
	for _, key := range element.AttributeKeys() {
		value, _ := element.GetAttribute(key)
		writeAttribute(b, key, value)
	}
}

func writeAttribute(b *strings.Builder, key, value string) {
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func (s *stringifier) children(b *strings.Builder, node *view.Node) {
	count := 0
	if element := node.AsElement(); element != nil {
		count = element.ChildCount()
	} else if fragment := node.AsDocumentFragment(); fragment != nil {
		count = fragment.ChildCount()
	}

	for i := 0; i < count; i++ {
		s.marker(b, node, i)
		s.node(b, childAt(node, i))
	}
	s.marker(b, node, count)
}

func (s *stringifier) marker(b *strings.Builder, parent *view.Node, offset int) {
	pos, err := view.NewPosition(parent, offset)
	if err != nil {
		return
	}
	b.WriteString(s.markers[pos])
}

func (s *stringifier) text(b *strings.Builder, text *view.Text) {
	runes := []rune(text.Data())
	for i, r := range runes {
		s.marker(b, text.AsNode(), i)
		b.WriteString(html.EscapeString(string(r)))
	}
	s.marker(b, text.AsNode(), len(runes))
}

func childAt(node *view.Node, index int) *view.Node {
	if fragment := node.AsDocumentFragment(); fragment != nil {
		return fragment.Child(index)
	}
	return node.AsElement().Child(index)
}
