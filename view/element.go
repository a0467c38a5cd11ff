package view

import (
	"sort"

	"golang.org/x/net/html/atom"
)

// Element is a node with a name, ordered children, attributes and custom
// properties. The variant is given by Kind.
type Element Node

// DefaultAttributePriority is the priority of attribute elements created
// without an explicit one.
const DefaultAttributePriority = 10

type attributeData struct {
	priority int
	id       string
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// Kind returns the element variant.
func (e *Element) Kind() Kind {
	return e.kind
}

// Is reports whether the element answers to tag, optionally with a name.
func (e *Element) Is(tag Tag, name ...string) bool {
	return e.AsNode().Is(tag, name...)
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// SetName renames a root element. Only roots may be renamed, and only
// before they are rendered.
func (e *Element) SetName(name string) error {
	if e.rootData == nil {
		return errInvalidState("Only root elements can be renamed.")
	}
	if e.rootData.rendered {
		return errInvalidState("The root element has already been rendered.")
	}
	e.name = name
	return nil
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Parent returns the parent node.
func (e *Element) Parent() *Node {
	return e.parent
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// IsEmpty reports whether the element has no children.
func (e *Element) IsEmpty() bool {
	return len(e.children) == 0
}

// Child returns the child at index, or nil when out of range.
func (e *Element) Child(index int) *Node {
	return e.AsNode().childAt(index)
}

// ChildIndex returns the index of node among the children, or -1.
func (e *Element) ChildIndex(node *Node) int {
	for i, child := range e.children {
		if child == node {
			return i
		}
	}
	return -1
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Node {
	children := make([]*Node, len(e.children))
	copy(children, e.children)
	return children
}

// AppendChild inserts nodes at the end of the child list and returns how
// many nodes were inserted. Fragments are replaced by their children.
func (e *Element) AppendChild(nodes ...*Node) (int, error) {
	return e.AsNode().insertChildren(len(e.children), nodes)
}

// InsertChild inserts nodes at index. Empty, UI and raw elements reject
// every insertion, even of zero nodes.
func (e *Element) InsertChild(index int, nodes ...*Node) (int, error) {
	return e.AsNode().insertChildren(index, nodes)
}

// RemoveChildren removes howMany children starting at index.
func (e *Element) RemoveChildren(index, howMany int) ([]*Node, error) {
	return e.AsNode().removeChildren(index, howMany)
}

// RemoveChild removes the given child.
func (e *Element) RemoveChild(child *Node) error {
	index := e.ChildIndex(child)
	if index < 0 {
		return errNotFound("The node to be removed is not a child of this element.")
	}
	_, err := e.RemoveChildren(index, 1)
	return err
}

// GetAttribute returns the value of the attribute and whether it is set.
func (e *Element) GetAttribute(key string) (string, bool) {
	return e.attrs.get(key)
}

// HasAttribute reports whether the attribute is set.
func (e *Element) HasAttribute(key string) bool {
	_, ok := e.attrs.get(key)
	return ok
}

// AttributeKeys returns the attribute names: class and style first, then the
// others in insertion order.
func (e *Element) AttributeKeys() []string {
	return e.attrs.orderedKeys()
}

// SetAttribute sets an attribute. "class" is split into class names and
// "style" is parsed into properties.
func (e *Element) SetAttribute(key, value string) error {
	if !IsValidAttributeName(key) {
		return newError(ErrInvalidAttributeName, "The attribute name contains invalid characters.")
	}
	old, _ := e.attrs.get(key)
	e.attrs.set(key, value)
	e.fireAttributeChange(key, old, false)
	return nil
}

// RemoveAttribute removes an attribute and reports whether it was set.
func (e *Element) RemoveAttribute(key string) bool {
	old, _ := e.attrs.get(key)
	if !e.attrs.remove(key) {
		return false
	}
	e.fireAttributeChange(key, old, true)
	return true
}

// AddClass adds class names.
func (e *Element) AddClass(names ...string) {
	old, _ := e.attrs.get("class")
	if e.attrs.addClasses(names) {
		e.fireAttributeChange("class", old, false)
	}
}

// RemoveClass removes class names.
func (e *Element) RemoveClass(names ...string) {
	old, _ := e.attrs.get("class")
	if e.attrs.removeClasses(names) {
		e.fireAttributeChange("class", old, false)
	}
}

// HasClass reports whether all the given classes are set.
func (e *Element) HasClass(names ...string) bool {
	for _, name := range names {
		if !e.attrs.hasClass(name) {
			return false
		}
	}
	return true
}

// ClassNames returns the class names in insertion order.
func (e *Element) ClassNames() []string {
	names := make([]string, len(e.attrs.classes))
	copy(names, e.attrs.classes)
	return names
}

// SetStyle sets a style property.
func (e *Element) SetStyle(property, value string) {
	old, _ := e.attrs.get("style")
	e.attrs.styles[property] = value
	e.fireAttributeChange("style", old, false)
}

// RemoveStyle removes style properties.
func (e *Element) RemoveStyle(properties ...string) {
	old, _ := e.attrs.get("style")
	changed := false
	for _, p := range properties {
		if _, ok := e.attrs.styles[p]; ok {
			delete(e.attrs.styles, p)
			changed = true
		}
	}
	if changed {
		e.fireAttributeChange("style", old, false)
	}
}

// Style returns a style property value.
func (e *Element) Style(property string) (string, bool) {
	value, ok := e.attrs.styles[property]
	return value, ok
}

// HasStyle reports whether all the given style properties are set.
func (e *Element) HasStyle(properties ...string) bool {
	for _, p := range properties {
		if _, ok := e.attrs.styles[p]; !ok {
			return false
		}
	}
	return true
}

// StyleNames returns the style property names, sorted.
func (e *Element) StyleNames() []string {
	names := make([]string, 0, len(e.attrs.styles))
	for name := range e.attrs.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Element) fireAttributeChange(key, old string, removed bool) {
	value, _ := e.attrs.get(key)
	e.AsNode().fireChange(ChangeAttributes, e.AsNode(), AttributeChange{
		Key:      key,
		OldValue: old,
		NewValue: value,
		Removed:  removed,
	})
}

// SetCustomProperty stores a non-serializable value on the element.
func (e *Element) SetCustomProperty(key, value any) {
	if e.custom == nil {
		e.custom = make(map[any]any)
	}
	e.custom[key] = value
}

// CustomProperty returns a custom property.
func (e *Element) CustomProperty(key any) (any, bool) {
	value, ok := e.custom[key]
	return value, ok
}

// RemoveCustomProperty removes a custom property and reports whether it
// existed.
func (e *Element) RemoveCustomProperty(key any) bool {
	if _, ok := e.custom[key]; !ok {
		return false
	}
	delete(e.custom, key)
	return true
}

// CustomPropertyKeys returns the keys of all custom properties.
func (e *Element) CustomPropertyKeys() []any {
	keys := make([]any, 0, len(e.custom))
	for key := range e.custom {
		keys = append(keys, key)
	}
	return keys
}

// Priority returns the priority of an attribute element. Other variants
// return 0.
func (e *Element) Priority() int {
	if e.attributeData == nil {
		return 0
	}
	return e.attributeData.priority
}

// ID returns the id of an attribute element, or "".
func (e *Element) ID() string {
	if e.attributeData == nil {
		return ""
	}
	return e.attributeData.id
}

// IsSimilar reports whether other has the same kind, name, attributes,
// classes and styles. Attribute elements with ids are similar only to
// elements with the same id.
func (e *Element) IsSimilar(other *Element) bool {
	if other == nil {
		return false
	}
	if e == other {
		return true
	}
	if e.kind != other.kind || e.name != other.name {
		return false
	}
	if e.attributeData != nil && other.attributeData != nil {
		if e.attributeData.id != "" || other.attributeData.id != "" {
			return e.attributeData.id == other.attributeData.id
		}
		if e.attributeData.priority != other.attributeData.priority {
			return false
		}
	}
	if len(e.attrs.values) != len(other.attrs.values) ||
		len(e.attrs.classes) != len(other.attrs.classes) ||
		len(e.attrs.styles) != len(other.attrs.styles) {
		return false
	}
	for key, value := range e.attrs.values {
		if v, ok := other.attrs.values[key]; !ok || v != value {
			return false
		}
	}
	for _, c := range e.attrs.classes {
		if !other.attrs.hasClass(c) {
			return false
		}
	}
	for key, value := range e.attrs.styles {
		if v, ok := other.attrs.styles[key]; !ok || v != value {
			return false
		}
	}
	return true
}

// FillerOffset returns the child index at which a filler placeholder has to
// be rendered, and false when no filler is needed.
func (e *Element) FillerOffset() (int, bool) {
	switch e.kind {
	case KindContainer, KindEditable, KindRoot:
		return containerFillerOffset(e)
	case KindAttribute:
		return attributeFillerOffset(e)
	default:
		return 0, false
	}
}

// containerFillerOffset: a filler goes after a trailing line break, or
// after the children when all of them (at least one) are UI elements.
func containerFillerOffset(e *Element) (int, bool) {
	count := len(e.children)
	if count == 0 {
		return 0, false
	}
	if isLineBreak(e.children[count-1]) {
		return count, true
	}
	for _, child := range e.children {
		if child.kind != KindUI {
			return 0, false
		}
	}
	return count, true
}

// attributeFillerOffset: an attribute element without content needs a
// filler when every enclosing attribute element, up to the container,
// holds nothing else.
func attributeFillerOffset(e *Element) (int, bool) {
	if nonUIChildCount(e.AsNode()) > 0 {
		return 0, false
	}
	node := e.parent
	for node != nil && node.kind == KindAttribute {
		if nonUIChildCount(node) > 1 {
			return 0, false
		}
		node = node.parent
	}
	if node == nil || nonUIChildCount(node) > 1 {
		return 0, false
	}
	return len(e.children), true
}

func nonUIChildCount(n *Node) int {
	count := 0
	for _, child := range n.children {
		if child.kind != KindUI {
			count++
		}
	}
	return count
}

// isLineBreak reports whether node is a <br>-like element.
func isLineBreak(node *Node) bool {
	return node.kind.IsElement() && atom.Lookup([]byte(node.name)) == atom.Br
}
