package view

// The rendering surface is an external collaborator. These interfaces are
// the seam through which render hooks and position translation reach it.

// NativeNode is a node of the rendering surface.
type NativeNode any

// NativeElement is an element of the rendering surface.
type NativeElement interface {
	SetAttribute(key, value string)
}

// NativeDocument creates elements on the rendering surface.
type NativeDocument interface {
	CreateElement(name string) NativeElement
}

// NativeSelection is the rendering surface's selection.
type NativeSelection interface {
	RangeCount() int
	IsCollapsed() bool
	FocusNode() NativeNode
	FocusOffset() int
	Collapse(node NativeNode, offset int)
	Extend(node NativeNode, offset int)
}

// DomConverter translates positions between the view and the rendering
// surface. Both methods report false when no mapping exists.
type DomConverter interface {
	DomPositionToView(node NativeNode, offset int) (Position, bool)
	ViewPositionToDom(position Position) (NativeNode, int, bool)
}

// RawRenderFunc fills a native element with content the view does not
// manage. It is the only way content appears inside a raw element.
type RawRenderFunc func(native NativeElement, conv DomConverter)

// UIRenderFunc builds the native element for a UI element.
type UIRenderFunc func(e *Element, doc NativeDocument, conv DomConverter) NativeElement

// defaultUIRender creates a bare element carrying the element's attributes.
func defaultUIRender(e *Element, doc NativeDocument, _ DomConverter) NativeElement {
	native := doc.CreateElement(e.Name())
	for _, key := range e.AttributeKeys() {
		value, _ := e.GetAttribute(key)
		native.SetAttribute(key, value)
	}
	return native
}

// Render calls the raw render hook with the native element.
func (e *Element) Render(native NativeElement, conv DomConverter) error {
	if e.kind != KindRaw {
		return errInvalidState("Only raw elements render into a native element.")
	}
	if e.rawRender != nil {
		e.rawRender(native, conv)
	}
	return nil
}

// SetRawRender replaces the render hook of a raw element.
func (e *Element) SetRawRender(fn RawRenderFunc) error {
	if e.kind != KindRaw {
		return errInvalidState("Only raw elements have a raw render hook.")
	}
	e.rawRender = fn
	return nil
}

// RenderUI builds the native element of a UI element.
func (e *Element) RenderUI(doc NativeDocument, conv DomConverter) (NativeElement, error) {
	if e.kind != KindUI {
		return nil, errInvalidState("Only UI elements build their own native element.")
	}
	render := e.uiRender
	if render == nil {
		render = defaultUIRender
	}
	return render(e, doc, conv), nil
}

// SetUIRender replaces the render hook of a UI element. A nil hook restores
// the default one.
func (e *Element) SetUIRender(fn UIRenderFunc) error {
	if e.kind != KindUI {
		return errInvalidState("Only UI elements have a UI render hook.")
	}
	e.uiRender = fn
	return nil
}
