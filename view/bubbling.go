package view

import (
	"sort"

	"go.uber.org/zap"
)

// EventPhase represents the phase of a bubbling dispatch.
type EventPhase int

const (
	EventPhaseNone      EventPhase = 0
	EventPhaseCapturing EventPhase = 1
	EventPhaseAtTarget  EventPhase = 2
	EventPhaseBubbling  EventPhase = 3
)

// String returns the string representation of the EventPhase.
func (p EventPhase) String() string {
	switch p {
	case EventPhaseNone:
		return "none"
	case EventPhaseCapturing:
		return "capturing"
	case EventPhaseAtTarget:
		return "atTarget"
	case EventPhaseBubbling:
		return "bubbling"
	default:
		return "unknown"
	}
}

// BubblingEventInfo is the event passed to bubbling listeners. The phase
// and the current target are maintained by the dispatcher.
type BubblingEventInfo struct {
	name          string
	source        any
	startRange    Range
	hasStart      bool
	phase         EventPhase
	currentTarget *Node
	stopped       bool

	// Return may be set by listeners to hand a value back to the firing code.
	Return any
}

// NewBubblingEventInfo creates an event that bubbles from startRange.
func NewBubblingEventInfo(source any, name string, startRange Range) *BubblingEventInfo {
	return &BubblingEventInfo{
		name:       name,
		source:     source,
		startRange: startRange,
		hasStart:   !startRange.IsZero(),
	}
}

// Name returns the event name.
func (e *BubblingEventInfo) Name() string { return e.name }

// Source returns the object that fired the event.
func (e *BubblingEventInfo) Source() any { return e.source }

// StartRange returns the range the event bubbles from.
func (e *BubblingEventInfo) StartRange() (Range, bool) { return e.startRange, e.hasStart }

// EventPhase returns the current phase.
func (e *BubblingEventInfo) EventPhase() EventPhase { return e.phase }

// CurrentTarget returns the node whose listeners are running, or nil.
func (e *BubblingEventInfo) CurrentTarget() *Node { return e.currentTarget }

// Stop ends the dispatch after the running listener returns.
func (e *BubblingEventInfo) Stop() { e.stopped = true }

// Stopped reports whether Stop was called.
func (e *BubblingEventInfo) Stopped() bool { return e.stopped }

// BubblingCallback receives bubbling events.
type BubblingCallback func(info *BubblingEventInfo, data any)

// Context selects the nodes of the bubbling path a listener runs at.
type Context func(node *Node) bool

// ContextName matches elements with the given name.
func ContextName(name string) Context {
	return func(node *Node) bool {
		return node.kind.IsElement() && node.name == name
	}
}

// ContextRoot matches root elements.
func ContextRoot() Context {
	return func(node *Node) bool {
		return node.kind == KindRoot
	}
}

// ContextText matches text nodes.
func ContextText() Context {
	return func(node *Node) bool {
		return node.kind == KindText
	}
}

// ContextFunc matches the elements accepted by fn.
func ContextFunc(fn func(*Element) bool) Context {
	return func(node *Node) bool {
		return node.kind.IsElement() && fn((*Element)(node))
	}
}

// ListenOptions configures a bubbling listener.
type ListenOptions struct {
	// Phase is EventPhaseCapturing, EventPhaseBubbling, or EventPhaseNone
	// (or EventPhaseAtTarget) for a listener that runs once at the target.
	Phase EventPhase
	// Priority orders listeners at each node. Unset means PriorityNormal.
	Priority Priority
	// Context limits the path nodes the listener runs at. Nil matches
	// every node.
	Context Context
}

// BubblingListener is a registered bubbling callback.
type BubblingListener struct {
	emitter  *BubblingEmitter
	event    string
	callback BubblingCallback
	opts     ListenOptions
	seq      uint64
	removed  bool
}

// Off unregisters the listener.
func (l *BubblingListener) Off() {
	if l == nil || l.removed {
		return
	}
	l.removed = true
	listeners := l.emitter.listeners[l.event]
	for i, existing := range listeners {
		if existing == l {
			l.emitter.listeners[l.event] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

func (l *BubblingListener) matches(node *Node) bool {
	return l.opts.Context == nil || (node != nil && l.opts.Context(node))
}

// BubblingEmitter dispatches events along the ancestor path of a start
// range: capturing from the top of the path down to the target, at the
// target, then bubbling back up.
type BubblingEmitter struct {
	doc       *Document
	listeners map[string][]*BubblingListener
	nextSeq   uint64
	boundary  func(*Node) bool
	logger    *zap.Logger
}

func newBubblingEmitter(d *Document) *BubblingEmitter {
	return &BubblingEmitter{
		doc:       d,
		listeners: make(map[string][]*BubblingListener),
		logger:    d.logger.Named("bubbling"),
	}
}

// On registers callback for event.
func (b *BubblingEmitter) On(event string, callback BubblingCallback, opts ListenOptions) *BubblingListener {
	if opts.Phase == EventPhaseAtTarget {
		opts.Phase = EventPhaseNone
	}
	b.nextSeq++
	l := &BubblingListener{emitter: b, event: event, callback: callback, opts: opts, seq: b.nextSeq}
	listeners := append(b.listeners[event], l)
	sort.SliceStable(listeners, func(i, j int) bool {
		if listeners[i].opts.Priority != listeners[j].opts.Priority {
			return listeners[i].opts.Priority < listeners[j].opts.Priority
		}
		return listeners[i].seq < listeners[j].seq
	})
	b.listeners[event] = listeners
	return l
}

// SetBoundary limits bubbling paths: a path ends at the first node accepted
// by boundary. A nil boundary lets paths reach the tree root.
func (b *BubblingEmitter) SetBoundary(boundary func(*Node) bool) {
	b.boundary = boundary
}

// Fire dispatches event from the first range of the document selection.
func (b *BubblingEmitter) Fire(event string, data any) *BubblingEventInfo {
	r, _ := b.doc.selection.FirstRange()
	return b.FireFrom(event, r, data)
}

// FireFrom dispatches event from startRange.
func (b *BubblingEmitter) FireFrom(event string, startRange Range, data any) *BubblingEventInfo {
	info := NewBubblingEventInfo(b.doc, event, startRange)
	b.Dispatch(info, data)
	return info
}

// Dispatch runs the listeners of info's event along the path computed from
// its start range.
func (b *BubblingEmitter) Dispatch(info *BubblingEventInfo, data any) {
	path := b.Path(info.startRange)
	listeners := append([]*BubblingListener(nil), b.listeners[info.name]...)
	if len(listeners) == 0 {
		return
	}

	info.phase = EventPhaseCapturing
	for i := len(path) - 1; i >= 0; i-- {
		if b.run(info, listeners, EventPhaseCapturing, path[i], data) {
			return
		}
	}

	info.phase = EventPhaseAtTarget
	var target *Node
	if len(path) > 0 {
		target = path[0]
	}
	if b.run(info, listeners, EventPhaseNone, target, data) {
		return
	}

	info.phase = EventPhaseBubbling
	for _, node := range path {
		if b.run(info, listeners, EventPhaseBubbling, node, data) {
			return
		}
	}
}

// Path returns the nodes an event starting at r visits, deepest first: the
// element the range contains, or the deeper of its boundary parents, up to
// the tree root or the boundary.
func (b *BubblingEmitter) Path(r Range) []*Node {
	if r.IsZero() {
		return nil
	}
	var node *Node
	if element := r.ContainedElement(); element != nil {
		node = element.AsNode()
	} else {
		node = r.end.parent
		if len(r.start.parent.Path()) > len(r.end.parent.Path()) {
			node = r.start.parent
		}
	}

	var path []*Node
	for ; node != nil; node = node.parent {
		path = append(path, node)
		if b.boundary != nil && b.boundary(node) {
			break
		}
	}
	return path
}

// run calls the listeners registered for phase that match node and reports
// whether the dispatch was stopped.
func (b *BubblingEmitter) run(info *BubblingEventInfo, listeners []*BubblingListener, phase EventPhase, node *Node, data any) bool {
	info.currentTarget = node
	for _, l := range listeners {
		if l.removed || l.opts.Phase != phase || !l.matches(node) {
			continue
		}
		l.callback(info, data)
		if info.stopped {
			b.logger.Debug("propagation stopped",
				zap.String("event", info.name),
				zap.Stringer("phase", info.phase))
			return true
		}
	}
	return false
}
