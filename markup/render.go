package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/viewtree/view"
)

// HTMLDocument creates native elements as html.Node values.
type HTMLDocument struct{}

// CreateElement creates a detached element node.
func (HTMLDocument) CreateElement(name string) view.NativeElement {
	return &HTMLElement{Node: newElementNode(name)}
}

// HTMLElement is a native element backed by an html.Node.
type HTMLElement struct {
	Node *html.Node
}

// SetAttribute sets or replaces an attribute.
func (e *HTMLElement) SetAttribute(key, value string) {
	for i := range e.Node.Attr {
		if e.Node.Attr[i].Key == key {
			e.Node.Attr[i].Val = value
			return
		}
	}
	e.Node.Attr = append(e.Node.Attr, html.Attribute{Key: key, Val: value})
}

// SetInnerHTML replaces the children with the parsed markup.
func (e *HTMLElement) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return fmt.Errorf("parsing inner html: %w", err)
	}
	for c := e.Node.FirstChild; c != nil; {
		next := c.NextSibling
		e.Node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		e.Node.AppendChild(n)
	}
	return nil
}

// innerHTMLRender returns a raw render hook that fills the native element
// with markup. Parse failures are logged, the hook has no error return.
func innerHTMLRender(markup string, logger *zap.Logger) view.RawRenderFunc {
	return func(native view.NativeElement, _ view.DomConverter) {
		setter, ok := native.(interface{ SetInnerHTML(string) error })
		if !ok {
			return
		}
		if err := setter.SetInnerHTML(markup); err != nil {
			logger.Warn("raw content not rendered", zap.String("markup", markup), zap.Error(err))
		}
	}
}

func newElementNode(name string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
}

// Converter maps positions between a view tree and the html.Node tree it
// was rendered to.
type Converter struct {
	toView map[*html.Node]*view.Node
	toDom  map[*view.Node]*html.Node
}

func newConverter() *Converter {
	return &Converter{
		toView: make(map[*html.Node]*view.Node),
		toDom:  make(map[*view.Node]*html.Node),
	}
}

func (c *Converter) bind(v *view.Node, n *html.Node) {
	c.toView[n] = v
	c.toDom[v] = n
}

// DomNode returns the html node rendered for node.
func (c *Converter) DomNode(node *view.Node) *html.Node {
	return c.toDom[node]
}

// ViewNode returns the view node rendered as node.
func (c *Converter) ViewNode(node *html.Node) *view.Node {
	return c.toView[node]
}

// DomPositionToView maps an offset inside an html node to a view position.
// Offsets past the view content, such as after a filler, are clamped.
func (c *Converter) DomPositionToView(node view.NativeNode, offset int) (view.Position, bool) {
	n, ok := node.(*html.Node)
	if !ok {
		return view.Position{}, false
	}
	v := c.toView[n]
	if v == nil || v.Kind() == view.KindUI || v.Kind() == view.KindRaw {
		return view.Position{}, false
	}
	pos, err := view.NewPosition(v, offset)
	if err != nil {
		pos = view.PositionAtEnd(v)
	}
	return pos, true
}

// ViewPositionToDom maps a view position to an html node and offset.
func (c *Converter) ViewPositionToDom(pos view.Position) (view.NativeNode, int, bool) {
	n := c.toDom[pos.Parent()]
	if n == nil {
		return nil, 0, false
	}
	return n, pos.Offset(), true
}

// Rendered is the outcome of Render.
type Rendered struct {
	Root      *html.Node
	Converter *Converter
}

// Render builds an html.Node tree for element. UI and raw elements are
// rendered through their hooks, and fillers are added where elements need
// them.
func Render(element *view.Element, opts ...Option) (*Rendered, error) {
	r := &renderer{opts: newOptions(opts), conv: newConverter()}
	root, err := r.node(element.AsNode())
	if err != nil {
		return nil, err
	}
	return &Rendered{Root: root, Converter: r.conv}, nil
}

type renderer struct {
	opts *options
	conv *Converter
	doc  HTMLDocument
}

func (r *renderer) node(node *view.Node) (*html.Node, error) {
	if text := node.AsText(); text != nil {
		n := &html.Node{Type: html.TextNode, Data: text.Data()}
		r.conv.bind(node, n)
		return n, nil
	}

	element := node.AsElement()
	if element == nil {
		return nil, fmt.Errorf("cannot render a %s node", node.Kind())
	}

	switch element.Kind() {
	case view.KindUI:
		native, err := element.RenderUI(r.doc, r.conv)
		if err != nil {
			return nil, err
		}
		htmlElement, ok := native.(*HTMLElement)
		if !ok {
			return nil, fmt.Errorf("ui element <%s> rendered a %T", element.Name(), native)
		}
		r.conv.bind(node, htmlElement.Node)
		return htmlElement.Node, nil
	case view.KindRaw:
		native := r.element(element)
		if err := element.Render(native, r.conv); err != nil {
			return nil, err
		}
		return native.Node, nil
	}

	native := r.element(element)
	filler, hasFiller := element.FillerOffset()
	for i, child := range element.Children() {
		if hasFiller && i == filler {
			native.Node.AppendChild(r.filler())
		}
		n, err := r.node(child)
		if err != nil {
			return nil, err
		}
		native.Node.AppendChild(n)
	}
	if hasFiller && filler >= element.ChildCount() {
		native.Node.AppendChild(r.filler())
	}
	return native.Node, nil
}

func (r *renderer) element(element *view.Element) *HTMLElement {
	native := r.doc.CreateElement(element.Name()).(*HTMLElement)
	for _, key := range element.AttributeKeys() {
		value, _ := element.GetAttribute(key)
		native.SetAttribute(key, value)
	}
	r.conv.bind(element.AsNode(), native.Node)
	return native
}

func (r *renderer) filler() *html.Node {
	n := newElementNode(r.opts.config.Filler.Name)
	if r.opts.config.Filler.Attribute != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: r.opts.config.Filler.Attribute, Val: "true"})
	}
	return n
}

// RenderString renders element and serializes the html tree.
func RenderString(element *view.Element, opts ...Option) (string, error) {
	rendered, err := Render(element, opts...)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := html.Render(&b, rendered.Root); err != nil {
		return "", fmt.Errorf("serializing rendered tree: %w", err)
	}
	return b.String(), nil
}

// DomSelection is a single range selection over an html.Node tree.
type DomSelection struct {
	anchor       *html.Node
	anchorOffset int
	focus        *html.Node
	focusOffset  int
}

// NewDomSelection creates a selection collapsed at node and offset.
func NewDomSelection(node *html.Node, offset int) *DomSelection {
	return &DomSelection{anchor: node, anchorOffset: offset, focus: node, focusOffset: offset}
}

// RangeCount returns 1 when the selection is set.
func (s *DomSelection) RangeCount() int {
	if s.anchor == nil {
		return 0
	}
	return 1
}

// IsCollapsed reports whether anchor and focus are equal.
func (s *DomSelection) IsCollapsed() bool {
	return s.anchor == s.focus && s.anchorOffset == s.focusOffset
}

// AnchorNode returns the anchor node.
func (s *DomSelection) AnchorNode() view.NativeNode { return s.anchor }

// AnchorOffset returns the anchor offset.
func (s *DomSelection) AnchorOffset() int { return s.anchorOffset }

// FocusNode returns the focus node.
func (s *DomSelection) FocusNode() view.NativeNode { return s.focus }

// FocusOffset returns the focus offset.
func (s *DomSelection) FocusOffset() int { return s.focusOffset }

// Collapse moves anchor and focus to node and offset.
func (s *DomSelection) Collapse(node view.NativeNode, offset int) {
	n, _ := node.(*html.Node)
	s.anchor, s.anchorOffset = n, offset
	s.focus, s.focusOffset = n, offset
}

// Extend moves the focus to node and offset.
func (s *DomSelection) Extend(node view.NativeNode, offset int) {
	n, _ := node.(*html.Node)
	s.focus, s.focusOffset = n, offset
}
