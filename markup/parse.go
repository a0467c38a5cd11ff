package markup

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/chrisuehlinger/viewtree/view"
)

// Attributes that carry attribute element settings instead of being copied.
const (
	priorityAttribute = "view-priority"
	idAttribute       = "view-id"
)

// Option configures Parse and Stringify.
type Option func(*options)

type options struct {
	config     *Config
	markers    bool
	backward   bool
	showType   bool
	showPrio   bool
	showID     bool
	ignoreRoot bool
	fake       bool
	fakeLabel  string
}

func newOptions(opts []Option) *options {
	o := &options{markers: true}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		o.config = DefaultConfig()
	}
	return o
}

// WithConfig sets the element kind configuration.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithoutMarkers treats selection marker characters as plain text.
func WithoutMarkers() Option {
	return func(o *options) {
		o.markers = false
	}
}

// WithBackward makes the parsed selection backward.
func WithBackward() Option {
	return func(o *options) {
		o.backward = true
	}
}

// WithFakeSelection makes the parsed selection fake with the given label.
func WithFakeSelection(label string) Option {
	return func(o *options) {
		o.fake = true
		o.fakeLabel = label
	}
}

// ShowType prefixes element names with their kind when stringifying.
func ShowType() Option {
	return func(o *options) {
		o.showType = true
	}
}

// ShowPriority prints attribute element priorities when stringifying.
func ShowPriority() Option {
	return func(o *options) {
		o.showPrio = true
	}
}

// ShowAttributeElementID prints attribute element ids when stringifying.
func ShowAttributeElementID() Option {
	return func(o *options) {
		o.showID = true
	}
}

// IgnoreRoot prints only the children of the stringified node.
func IgnoreRoot() Option {
	return func(o *options) {
		o.ignoreRoot = true
	}
}

// Result is the outcome of Parse.
type Result struct {
	// Fragment holds the parsed nodes when Parse created it.
	Fragment *view.DocumentFragment
	// Ranges are the ranges marked in the markup, in marker order.
	Ranges []view.Range
	// Selection is set to Ranges, or empty without markers.
	Selection *view.Selection
}

// Parse builds a document fragment from markup.
func Parse(doc *view.Document, markup string, opts ...Option) (*Result, error) {
	fragment := doc.CreateDocumentFragment()
	result, err := parseInto(doc, fragment.AsNode(), markup, newOptions(opts))
	if err != nil {
		return nil, err
	}
	result.Fragment = fragment
	return result, nil
}

// ParseInto appends the nodes parsed from markup to element.
func ParseInto(element *view.Element, markup string, opts ...Option) (*Result, error) {
	return parseInto(element.Document(), element.AsNode(), markup, newOptions(opts))
}

type marker struct {
	open bool
	pos  view.Position
}

type parser struct {
	doc     *view.Document
	opts    *options
	stack   []*view.Node
	names   []string
	markers []marker
}

func parseInto(doc *view.Document, target *view.Node, markup string, o *options) (*Result, error) {
	p := &parser{doc: doc, opts: o, stack: []*view.Node{target}, names: []string{""}}
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenizing markup: %w", err)
			}
			return p.finish()
		case html.TextToken:
			if err := p.text(string(z.Text())); err != nil {
				return nil, err
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			node, err := p.element(token)
			if err != nil {
				return nil, err
			}
			switch {
			case node.Kind() == view.KindRaw && tt == html.StartTagToken:
				if err := p.raw(z, node, token.Data); err != nil {
					return nil, err
				}
			case tt == html.StartTagToken && canHaveChildren(node.Kind()):
				p.stack = append(p.stack, node)
				p.names = append(p.names, token.Data)
			}
		case html.EndTagToken:
			token := z.Token()
			if err := p.close(token.Data); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) parent() *view.Node {
	return p.stack[len(p.stack)-1]
}

func (p *parser) text(data string) error {
	if !p.opts.markers {
		return p.appendText(data)
	}

	type textMarker struct {
		open   bool
		offset int
	}
	var (
		segment []rune
		pending []textMarker
	)
	flush := func() error {
		parent := p.parent()
		if len(segment) == 0 {
			for _, m := range pending {
				p.markers = append(p.markers, marker{open: m.open, pos: view.PositionAtEnd(parent)})
			}
			pending = nil
			return nil
		}
		text := p.doc.CreateText(string(segment))
		if err := appendChild(parent, text.AsNode()); err != nil {
			return err
		}
		for _, m := range pending {
			pos, err := view.NewPosition(text.AsNode(), m.offset)
			if err != nil {
				return err
			}
			p.markers = append(p.markers, marker{open: m.open, pos: pos})
		}
		segment, pending = nil, nil
		return nil
	}

	for _, r := range data {
		switch r {
		case '{', '}':
			pending = append(pending, textMarker{open: r == '{', offset: len(segment)})
		case '[', ']':
			if err := flush(); err != nil {
				return err
			}
			p.markers = append(p.markers, marker{open: r == '[', pos: view.PositionAtEnd(p.parent())})
		default:
			segment = append(segment, r)
		}
	}
	return flush()
}

func (p *parser) appendText(data string) error {
	if data == "" {
		return nil
	}
	return appendChild(p.parent(), p.doc.CreateText(data).AsNode())
}

func (p *parser) element(token html.Token) (*view.Node, error) {
	kind, name := p.resolve(token.Data)

	attrs := make(map[string]string)
	var attrOpts []view.AttributeElementOption
	for _, attr := range token.Attr {
		switch attr.Key {
		case priorityAttribute:
			priority, err := strconv.Atoi(attr.Val)
			if err != nil {
				return nil, fmt.Errorf("parsing %s of <%s>: %w", priorityAttribute, token.Data, err)
			}
			attrOpts = append(attrOpts, view.WithElementPriority(priority))
		case idAttribute:
			attrOpts = append(attrOpts, view.WithElementID(attr.Val))
		default:
			attrs[attr.Key] = attr.Val
		}
	}

	var element *view.Element
	switch kind {
	case view.KindAttribute:
		element = p.doc.CreateAttributeElement(name, attrs, attrOpts...)
	case view.KindEmpty:
		element = p.doc.CreateEmptyElement(name, attrs)
	case view.KindUI:
		element = p.doc.CreateUIElement(name, attrs, nil)
	case view.KindRaw:
		element = p.doc.CreateRawElement(name, attrs, nil)
	case view.KindEditable:
		element = p.doc.CreateEditableElement(name, attrs)
	default:
		element = p.doc.CreateContainerElement(name, attrs)
	}

	if err := appendChild(p.parent(), element.AsNode()); err != nil {
		return nil, err
	}
	return element.AsNode(), nil
}

// raw collects the markup inside a raw element and renders it as the
// element's content.
func (p *parser) raw(z *html.Tokenizer, node *view.Node, tag string) error {
	var content strings.Builder
	depth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return fmt.Errorf("unclosed raw element <%s>", tag)
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				if depth == 0 {
					return node.AsElement().SetRawRender(innerHTMLRender(content.String(), p.doc.Logger().Named("markup")))
				}
				depth--
			}
		}
		content.Write(z.Raw())
	}
}

func (p *parser) close(tag string) error {
	for i := len(p.names) - 1; i > 0; i-- {
		if p.names[i] == tag {
			p.stack = p.stack[:i]
			p.names = p.names[:i]
			return nil
		}
	}
	if kind, _ := p.resolve(tag); !canHaveChildren(kind) {
		return nil
	}
	return fmt.Errorf("unexpected closing tag </%s>", tag)
}

func (p *parser) finish() (*Result, error) {
	if len(p.stack) > 1 {
		return nil, fmt.Errorf("unclosed element <%s>", p.names[len(p.names)-1])
	}

	result := &Result{Selection: view.NewSelection()}
	var start *view.Position
	for _, m := range p.markers {
		switch {
		case m.open && start == nil:
			pos := m.pos
			start = &pos
		case !m.open && start != nil:
			result.Ranges = append(result.Ranges, view.NewRange(*start, m.pos))
			start = nil
		default:
			return nil, fmt.Errorf("unbalanced selection markers")
		}
	}
	if start != nil {
		return nil, fmt.Errorf("unbalanced selection markers")
	}

	if len(result.Ranges) > 0 {
		err := result.Selection.SetToRanges(result.Ranges, view.SelectionOptions{
			Backward: p.opts.backward,
			Fake:     p.opts.fake,
			Label:    p.opts.fakeLabel,
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolve splits an optional kind prefix off a tag name.
func (p *parser) resolve(tag string) (view.Kind, string) {
	if prefix, name, ok := strings.Cut(tag, ":"); ok {
		if kind, known := kindByPrefix[prefix]; known {
			return kind, name
		}
	}
	return p.opts.config.KindOf(tag), tag
}

func canHaveChildren(kind view.Kind) bool {
	return kind != view.KindEmpty && kind != view.KindUI && kind != view.KindRaw
}

func appendChild(parent, child *view.Node) error {
	var err error
	if fragment := parent.AsDocumentFragment(); fragment != nil {
		_, err = fragment.AppendChild(child)
	} else {
		_, err = parent.AsElement().AppendChild(child)
	}
	return err
}
