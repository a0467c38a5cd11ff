package view

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Document owns the roots of an editing view, its selection and the
// document-wide observable state.
type Document struct {
	emitter   *Emitter
	selection *DocumentSelection
	bubbling  *BubblingEmitter
	roots     []*Node
	editables []*Node
	logger    *zap.Logger

	isReadOnly  *Observable[bool]
	isFocused   *Observable[bool]
	isComposing *Observable[bool]
}

// Option configures a Document.
type Option func(*documentConfig)

type documentConfig struct {
	logger   *zap.Logger
	readOnly bool
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *documentConfig) {
		c.logger = logger
	}
}

// WithReadOnly sets the initial read-only state.
func WithReadOnly(readOnly bool) Option {
	return func(c *documentConfig) {
		c.readOnly = readOnly
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	cfg := documentConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	d := &Document{logger: cfg.logger.Named("view")}
	d.emitter = newEmitter(d)
	d.isReadOnly = newObservable(d.emitter, "isReadOnly", cfg.readOnly)
	d.isFocused = newObservable(d.emitter, "isFocused", false)
	d.isComposing = newObservable(d.emitter, "isComposing", false)
	d.selection = newDocumentSelection(d)
	d.bubbling = newBubblingEmitter(d)
	return d
}

// Logger returns the document logger.
func (d *Document) Logger() *zap.Logger {
	return d.logger
}

// On registers a listener for document events such as "change:isFocused".
func (d *Document) On(event string, callback Callback, opts ...ListenOption) *Listener {
	return d.emitter.On(event, callback, opts...)
}

// Selection returns the read-only document selection.
func (d *Document) Selection() *DocumentSelection {
	return d.selection
}

// SelectionWriter returns the privileged writer of the document selection.
func (d *Document) SelectionWriter() *SelectionWriter {
	return &SelectionWriter{selection: d.selection}
}

// Bubbling returns the bubbling event emitter of the document.
func (d *Document) Bubbling() *BubblingEmitter {
	return d.bubbling
}

// IsReadOnly reports whether the document is read-only.
func (d *Document) IsReadOnly() bool {
	return d.isReadOnly.Get()
}

// SetReadOnly changes the read-only state. Editable elements follow it.
func (d *Document) SetReadOnly(readOnly bool) {
	d.isReadOnly.Set(readOnly)
}

// IsFocused reports whether the document has focus.
func (d *Document) IsFocused() bool {
	return d.isFocused.Get()
}

// SetFocused changes the focus state.
func (d *Document) SetFocused(focused bool) {
	d.isFocused.Set(focused)
}

// IsComposing reports whether an input composition is in progress.
func (d *Document) IsComposing() bool {
	return d.isComposing.Get()
}

// SetComposing changes the composition state.
func (d *Document) SetComposing(composing bool) {
	d.isComposing.Set(composing)
}

// CreateRoot creates and registers a root element. An empty rootName means
// DefaultRootName.
func (d *Document) CreateRoot(name, rootName string) (*Element, error) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	if d.Root(rootName) != nil {
		return nil, errInvalidState(fmt.Sprintf("A root named %q already exists.", rootName))
	}
	n := d.newElement(KindRoot, name, nil)
	n.rootData = &rootData{rootName: rootName}
	d.bindEditable(n)
	d.roots = append(d.roots, n)
	d.logger.Debug("root created", zap.String("rootName", rootName), zap.String("name", name))
	return (*Element)(n), nil
}

// Root returns the root registered under rootName, or nil. An empty name
// means DefaultRootName.
func (d *Document) Root(rootName string) *Element {
	if rootName == "" {
		rootName = DefaultRootName
	}
	for _, root := range d.roots {
		if root.rootData.rootName == rootName {
			return (*Element)(root)
		}
	}
	return nil
}

// Roots returns all roots in creation order.
func (d *Document) Roots() []*Element {
	roots := make([]*Element, len(d.roots))
	for i, root := range d.roots {
		roots[i] = (*Element)(root)
	}
	return roots
}

// CreateContainerElement creates a container element.
func (d *Document) CreateContainerElement(name string, attrs map[string]string) *Element {
	return (*Element)(d.newElement(KindContainer, name, attrs))
}

// AttributeElementOption configures an attribute element.
type AttributeElementOption func(*attributeData)

// WithElementPriority sets the attribute element priority.
func WithElementPriority(priority int) AttributeElementOption {
	return func(a *attributeData) {
		a.priority = priority
	}
}

// WithElementID sets the attribute element id.
func WithElementID(id string) AttributeElementOption {
	return func(a *attributeData) {
		a.id = id
	}
}

// CreateAttributeElement creates an attribute element.
func (d *Document) CreateAttributeElement(name string, attrs map[string]string, opts ...AttributeElementOption) *Element {
	n := d.newElement(KindAttribute, name, attrs)
	n.attributeData = &attributeData{priority: DefaultAttributePriority}
	for _, opt := range opts {
		opt(n.attributeData)
	}
	return (*Element)(n)
}

// CreateEmptyElement creates an element which never has children.
func (d *Document) CreateEmptyElement(name string, attrs map[string]string) *Element {
	return (*Element)(d.newElement(KindEmpty, name, attrs))
}

// CreateRawElement creates a raw element rendered by render.
func (d *Document) CreateRawElement(name string, attrs map[string]string, render RawRenderFunc) *Element {
	n := d.newElement(KindRaw, name, attrs)
	n.rawRender = render
	return (*Element)(n)
}

// CreateUIElement creates a UI element. A nil render uses the default hook.
func (d *Document) CreateUIElement(name string, attrs map[string]string, render UIRenderFunc) *Element {
	n := d.newElement(KindUI, name, attrs)
	n.uiRender = render
	return (*Element)(n)
}

// CreateEditableElement creates a nested editable element.
func (d *Document) CreateEditableElement(name string, attrs map[string]string) *Element {
	n := d.newElement(KindEditable, name, attrs)
	d.bindEditable(n)
	return (*Element)(n)
}

// CreateText creates a text node.
func (d *Document) CreateText(data string) *Text {
	n := newNode(KindText, d)
	n.data = data
	return (*Text)(n)
}

// CreateDocumentFragment creates an empty fragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	return (*DocumentFragment)(newNode(KindDocumentFragment, d))
}

// Destroy releases the subscriptions of every editable element.
func (d *Document) Destroy() {
	for _, n := range append([]*Node(nil), d.editables...) {
		(*Element)(n).Destroy()
	}
}

func (d *Document) newElement(kind Kind, name string, attrs map[string]string) *Node {
	n := newNode(kind, d)
	n.name = name
	n.attrs = newAttributes()

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if IsValidAttributeName(key) {
			n.attrs.set(key, attrs[key])
		}
	}
	return n
}
