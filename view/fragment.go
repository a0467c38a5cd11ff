package view

// DocumentFragment holds nodes that are not part of any root. Inserting a
// fragment into an element moves its children.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (f *DocumentFragment) AsNode() *Node {
	return (*Node)(f)
}

// ChildCount returns the number of children.
func (f *DocumentFragment) ChildCount() int {
	return len(f.children)
}

// IsEmpty reports whether the fragment has no children.
func (f *DocumentFragment) IsEmpty() bool {
	return len(f.children) == 0
}

// Child returns the child at index, or nil.
func (f *DocumentFragment) Child(index int) *Node {
	return f.AsNode().childAt(index)
}

// Children returns a copy of the child list.
func (f *DocumentFragment) Children() []*Node {
	children := make([]*Node, len(f.children))
	copy(children, f.children)
	return children
}

// AppendChild inserts nodes at the end of the fragment.
func (f *DocumentFragment) AppendChild(nodes ...*Node) (int, error) {
	return f.AsNode().insertChildren(len(f.children), nodes)
}

// InsertChild inserts nodes at index.
func (f *DocumentFragment) InsertChild(index int, nodes ...*Node) (int, error) {
	return f.AsNode().insertChildren(index, nodes)
}

// RemoveChildren removes howMany children starting at index.
func (f *DocumentFragment) RemoveChildren(index, howMany int) ([]*Node, error) {
	return f.AsNode().removeChildren(index, howMany)
}

// On registers a change listener on the fragment.
func (f *DocumentFragment) On(event string, callback Callback, opts ...ListenOption) *Listener {
	return f.emitter.On(event, callback, opts...)
}
