// Package view implements the editing view: a DOM-independent tree of
// editable content with element variants, positions, ranges, selections and
// a bubbling event dispatcher driven by a start range.
package view

// Kind identifies the concrete variant of a Node.
type Kind uint8

const (
	// KindText is a text node.
	KindText Kind = iota + 1
	// KindDocumentFragment is a parentless holder of floating nodes.
	KindDocumentFragment
	// KindContainer is a structural element which accepts any children.
	KindContainer
	// KindAttribute is an inline formatting element.
	KindAttribute
	// KindEmpty is an element which never has children.
	KindEmpty
	// KindRaw is an element whose content is rendered out of band.
	KindRaw
	// KindUI is an element excluded from user content and selection.
	KindUI
	// KindEditable is an editable container.
	KindEditable
	// KindRoot is the root of an editing tree owned by a document.
	KindRoot
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "$text"
	case KindDocumentFragment:
		return "documentFragment"
	case KindContainer:
		return "containerElement"
	case KindAttribute:
		return "attributeElement"
	case KindEmpty:
		return "emptyElement"
	case KindRaw:
		return "rawElement"
	case KindUI:
		return "uiElement"
	case KindEditable:
		return "editableElement"
	case KindRoot:
		return "rootElement"
	default:
		return "unknown"
	}
}

// IsElement reports whether the kind is one of the element variants.
func (k Kind) IsElement() bool {
	return k >= KindContainer && k <= KindRoot
}

// Tag names a capability answered by Node.Is.
type Tag uint8

const (
	TagNode Tag = iota + 1
	TagText
	TagDocumentFragment
	TagElement
	TagContainerElement
	TagAttributeElement
	TagEmptyElement
	TagRawElement
	TagUIElement
	TagEditableElement
	TagRootElement
)

// String returns the string representation of the Tag.
func (t Tag) String() string {
	switch t {
	case TagNode:
		return "node"
	case TagText:
		return "$text"
	case TagDocumentFragment:
		return "documentFragment"
	case TagElement:
		return "element"
	case TagContainerElement:
		return "containerElement"
	case TagAttributeElement:
		return "attributeElement"
	case TagEmptyElement:
		return "emptyElement"
	case TagRawElement:
		return "rawElement"
	case TagUIElement:
		return "uiElement"
	case TagEditableElement:
		return "editableElement"
	case TagRootElement:
		return "rootElement"
	default:
		return "unknown"
	}
}

type tagSet uint32

func tags(list ...Tag) tagSet {
	var s tagSet
	for _, t := range list {
		s |= 1 << t
	}
	return s
}

// capabilities lists, per kind, every tag the kind answers to: its own and
// all less specific ones.
var capabilities = [...]tagSet{
	KindText:             tags(TagNode, TagText),
	KindDocumentFragment: tags(TagDocumentFragment),
	KindContainer:        tags(TagNode, TagElement, TagContainerElement),
	KindAttribute:        tags(TagNode, TagElement, TagAttributeElement),
	KindEmpty:            tags(TagNode, TagElement, TagEmptyElement),
	KindRaw:              tags(TagNode, TagElement, TagRawElement),
	KindUI:               tags(TagNode, TagElement, TagUIElement),
	KindEditable:         tags(TagNode, TagElement, TagContainerElement, TagEditableElement),
	KindRoot:             tags(TagNode, TagElement, TagContainerElement, TagEditableElement, TagRootElement),
}

// kindHas reports whether kind k answers to tag t.
func kindHas(k Kind, t Tag) bool {
	if int(k) >= len(capabilities) {
		return false
	}
	return capabilities[k]&(1<<t) != 0
}
