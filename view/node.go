package view

import (
	"go.uber.org/zap"
)

// ChangeType names the kind of mutation a node reports through
// "change:<type>" events.
type ChangeType string

const (
	ChangeChildren   ChangeType = "children"
	ChangeAttributes ChangeType = "attributes"
	ChangeText       ChangeType = "text"
)

// ChildrenChange is the payload of a "change:children" event.
type ChildrenChange struct {
	Index    int
	Inserted []*Node
	Removed  []*Node
}

// AttributeChange is the payload of a "change:attributes" event.
type AttributeChange struct {
	Key      string
	OldValue string
	NewValue string
	Removed  bool
}

// Node is the unit of membership in a view tree. Element, Text and
// DocumentFragment share this representation and are obtained with the
// As* accessors.
type Node struct {
	kind    Kind
	doc     *Document
	parent  *Node
	emitter *Emitter

	// Element and DocumentFragment data
	name     string
	children []*Node
	attrs    *attributes
	custom   map[any]any

	// Text data
	data string

	// Variant data (only the ones matching kind are set)
	attributeData *attributeData
	editableData  *editableData
	rootData      *rootData
	rawRender     RawRenderFunc
	uiRender      UIRenderFunc
}

func newNode(kind Kind, doc *Document) *Node {
	n := &Node{kind: kind, doc: doc}
	n.emitter = newEmitter(n)
	return n
}

// Kind returns the variant of the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Is reports whether the node answers to tag. A Container answers true for
// TagContainerElement, TagElement and TagNode. When a name is given, the node
// must also be an element with that name.
func (n *Node) Is(tag Tag, name ...string) bool {
	if !kindHas(n.kind, tag) {
		return false
	}
	if len(name) > 0 {
		return n.kind.IsElement() && n.name == name[0]
	}
	return true
}

// Document returns the document the node was created by. It never changes.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil for an unattached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// ParentElement returns the parent as an Element, or nil.
func (n *Node) ParentElement() *Element {
	if n.parent != nil && n.parent.kind.IsElement() {
		return (*Element)(n.parent)
	}
	return nil
}

// AsElement returns the node as an Element, or nil if it is not one.
func (n *Node) AsElement() *Element {
	if !n.kind.IsElement() {
		return nil
	}
	return (*Element)(n)
}

// AsText returns the node as a Text, or nil if it is not one.
func (n *Node) AsText() *Text {
	if n.kind != KindText {
		return nil
	}
	return (*Text)(n)
}

// AsDocumentFragment returns the node as a DocumentFragment, or nil.
func (n *Node) AsDocumentFragment() *DocumentFragment {
	if n.kind != KindDocumentFragment {
		return nil
	}
	return (*DocumentFragment)(n)
}

// On registers a listener on the node's own emitter. Change events of all
// descendants are re-fired on every ancestor, so a listener on a root
// observes the whole tree.
func (n *Node) On(event string, callback Callback, opts ...ListenOption) *Listener {
	return n.emitter.On(event, callback, opts...)
}

// IndexWithError returns the position of the node among its parent's
// children, or -1 when the node has no parent. It returns a
// StructureCorruptedError when the parent does not list the node.
func (n *Node) IndexWithError() (int, error) {
	if n.parent == nil {
		return -1, nil
	}
	for i, child := range n.parent.children {
		if child == n {
			return i, nil
		}
	}
	return -1, errStructureCorrupted("The node's parent does not contain this node.")
}

// Index returns the position of the node among its parent's children, or -1
// when the node has no parent. It panics with a StructureCorruptedError when
// the tree bookkeeping is inconsistent.
func (n *Node) Index() int {
	index, err := n.IndexWithError()
	if err != nil {
		if n.doc != nil {
			n.doc.logger.Error("view tree corrupted", zap.Stringer("kind", n.kind), zap.String("name", n.name))
		}
		panic(err)
	}
	return index
}

// NextSibling returns the node following this one, or nil.
func (n *Node) NextSibling() *Node {
	index := n.Index()
	if index < 0 || index+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[index+1]
}

// PreviousSibling returns the node preceding this one, or nil.
func (n *Node) PreviousSibling() *Node {
	index := n.Index()
	if index <= 0 {
		return nil
	}
	return n.parent.children[index-1]
}

// Root returns the topmost ancestor, which is the node itself when it has no
// parent.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// IsAttached reports whether the node belongs to a tree whose root is a
// document root element. Nodes in fragments or detached subtrees are not
// attached.
func (n *Node) IsAttached() bool {
	return n.Root().kind == KindRoot
}

// Path returns the child indexes leading from the root to this node.
func (n *Node) Path() []int {
	var path []int
	for node := n; node.parent != nil; node = node.parent {
		path = append(path, node.Index())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// AncestorOptions configures Ancestors and CommonAncestor.
type AncestorOptions struct {
	// IncludeSelf counts the node as its own ancestor.
	IncludeSelf bool
	// ParentFirst orders the result from the parent up to the root.
	ParentFirst bool
}

// Ancestors returns the ancestors of the node, root first unless
// ParentFirst is set.
func (n *Node) Ancestors(opts AncestorOptions) []*Node {
	var ancestors []*Node
	node := n.parent
	if opts.IncludeSelf {
		node = n
	}
	for ; node != nil; node = node.parent {
		ancestors = append(ancestors, node)
	}
	if !opts.ParentFirst {
		for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
			ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
		}
	}
	return ancestors
}

// CommonAncestor returns the lowest common ancestor of both nodes, or nil
// when they are in different trees. With IncludeSelf, each node counts as
// its own ancestor, so a node and its descendant share the node itself.
func (n *Node) CommonAncestor(other *Node, opts AncestorOptions) *Node {
	if other == nil {
		return nil
	}
	opts.ParentFirst = false
	a := n.Ancestors(opts)
	b := other.Ancestors(opts)

	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	if i == 0 {
		return nil
	}
	return a[i-1]
}

// IsBefore reports whether the node precedes other in document order.
// Nodes in different trees are incomparable and yield false.
func (n *Node) IsBefore(other *Node) bool {
	if other == nil || n == other {
		return false
	}
	if n.Root() != other.Root() {
		return false
	}
	a := n.Path()
	b := other.Path()
	switch i := firstDifference(a, b); {
	case i == len(a):
		// a is a prefix of b: n is an ancestor of other.
		return true
	case i == len(b):
		return false
	default:
		return a[i] < b[i]
	}
}

// IsAfter reports whether the node follows other in document order.
// Nodes in different trees are incomparable and yield false.
func (n *Node) IsAfter(other *Node) bool {
	if other == nil || n == other {
		return false
	}
	if n.Root() != other.Root() {
		return false
	}
	return !n.IsBefore(other)
}

// Remove detaches the node from its parent, if any.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	// Removing a child we just located cannot fail.
	_, _ = n.parent.removeChildren(n.Index(), 1)
}

// firstDifference returns the first index at which a and b differ, or the
// length of the shorter slice when one is a prefix of the other.
func firstDifference(a, b []int) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// isInclusiveAncestorOf reports whether n is node or one of its ancestors.
func (n *Node) isInclusiveAncestorOf(node *Node) bool {
	for current := node; current != nil; current = current.parent {
		if current == n {
			return true
		}
	}
	return false
}

// length returns the number of offsets inside the node: characters for text,
// children otherwise.
func (n *Node) length() int {
	if n.kind == KindText {
		return textLength(n.data)
	}
	return len(n.children)
}

// childAt returns the child at index, or nil when out of range.
func (n *Node) childAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// fireChange fires "change:<type>" on the node and then on every ancestor.
// The ancestor list is computed once, before any listener runs.
func (n *Node) fireChange(changeType ChangeType, changed *Node, data any) {
	event := "change:" + string(changeType)
	var targets []*Node
	for node := n; node != nil; node = node.parent {
		targets = append(targets, node)
	}
	for _, target := range targets {
		target.emitter.Fire(event, changed, data)
	}
}

// insertChildren validates every node before changing anything, then moves
// the nodes under n starting at index and fires a single change event.
func (n *Node) insertChildren(index int, nodes []*Node) (int, error) {
	switch n.kind {
	case KindEmpty:
		return 0, newError(ErrEmptyElementCannotAdd, "Cannot add child nodes to an empty element.")
	case KindUI:
		return 0, newError(ErrUIElementCannotAdd, "Cannot add child nodes to a UI element.")
	case KindRaw:
		return 0, newError(ErrRawElementCannotAdd, "Cannot add child nodes to a raw element.")
	case KindText:
		return 0, errHierarchyRequest("Text nodes cannot have children.")
	}
	if index < 0 || index > len(n.children) {
		return 0, errIndexSize("The index is out of range.")
	}

	insertable, err := n.collectInsertable(nodes)
	if err != nil {
		return 0, err
	}
	if len(insertable) == 0 {
		return 0, nil
	}

	for _, node := range insertable {
		if node.parent == nil {
			continue
		}
		oldParent := node.parent
		oldIndex := node.Index()
		_, _ = oldParent.removeChildren(oldIndex, 1)
		if oldParent == n && oldIndex < index {
			index--
		}
	}

	updated := make([]*Node, 0, len(n.children)+len(insertable))
	updated = append(updated, n.children[:index]...)
	updated = append(updated, insertable...)
	updated = append(updated, n.children[index:]...)
	n.children = updated
	for _, node := range insertable {
		node.parent = n
	}

	n.fireChange(ChangeChildren, n, ChildrenChange{Index: index, Inserted: insertable})
	return len(insertable), nil
}

// collectInsertable expands fragments and checks that every node may be
// inserted into n.
func (n *Node) collectInsertable(nodes []*Node) ([]*Node, error) {
	var result []*Node
	seen := make(map[*Node]bool)

	add := func(node *Node) error {
		if node.doc != n.doc {
			return errWrongDocument("The node belongs to a different document.")
		}
		if node.rootData != nil {
			return errHierarchyRequest("Root elements cannot be inserted into other nodes.")
		}
		if node.kind == KindDocumentFragment {
			return errHierarchyRequest("Document fragments cannot be nested.")
		}
		if node.isInclusiveAncestorOf(n) {
			return errHierarchyRequest("The new child contains the parent.")
		}
		if seen[node] {
			return errHierarchyRequest("The same node cannot be inserted twice.")
		}
		seen[node] = true
		result = append(result, node)
		return nil
	}

	for _, node := range nodes {
		if node == nil {
			return nil, errHierarchyRequest("Cannot insert a nil node.")
		}
		if node.kind != KindDocumentFragment {
			if err := add(node); err != nil {
				return nil, err
			}
			continue
		}
		if node == n {
			return nil, errHierarchyRequest("A fragment cannot be inserted into itself.")
		}
		for _, child := range node.children {
			if err := add(child); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// removeChildren detaches howMany children starting at index.
func (n *Node) removeChildren(index, howMany int) ([]*Node, error) {
	if index < 0 || howMany < 0 || index+howMany > len(n.children) {
		return nil, errIndexSize("The range of children to remove is out of bounds.")
	}
	if howMany == 0 {
		return nil, nil
	}

	removed := make([]*Node, howMany)
	copy(removed, n.children[index:index+howMany])
	n.children = append(n.children[:index], n.children[index+howMany:]...)
	for _, child := range removed {
		child.parent = nil
	}

	n.fireChange(ChangeChildren, n, ChildrenChange{Index: index, Removed: removed})
	return removed, nil
}
