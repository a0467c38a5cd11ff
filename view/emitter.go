package view

import (
	"sort"
	"strings"
)

// Priority determines listener execution order.
// Lower values execute first. The zero value is PriorityNormal.
type Priority int

const (
	PriorityHighest Priority = -200
	PriorityHigh    Priority = -100
	PriorityNormal  Priority = 0
	PriorityLow     Priority = 100
	PriorityLowest  Priority = 200
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityHighest:
		return "highest"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	case p <= PriorityLow:
		return "low"
	default:
		return "lowest"
	}
}

// EventInfo carries a fired event to its listeners.
type EventInfo struct {
	Name   string
	Source any

	// Return may be set by listeners to hand a value back to the firing code.
	Return any

	stopped bool
}

// Stop prevents the remaining listeners from being called.
func (e *EventInfo) Stop() {
	e.stopped = true
}

// Stopped reports whether Stop was called.
func (e *EventInfo) Stopped() bool {
	return e.stopped
}

// Callback receives fired events.
type Callback func(evt *EventInfo, args ...any)

// Listener is a registered callback. Call Off to unregister it.
type Listener struct {
	emitter  *Emitter
	event    string
	callback Callback
	priority Priority
	once     bool
	seq      uint64
	removed  bool
}

// Off unregisters the listener. It is safe to call more than once.
func (l *Listener) Off() {
	if l == nil || l.removed {
		return
	}
	l.removed = true
	l.emitter.remove(l)
}

// ListenOption configures a listener.
type ListenOption func(*Listener)

// WithPriority sets the listener priority.
func WithPriority(p Priority) ListenOption {
	return func(l *Listener) {
		l.priority = p
	}
}

// WithOnce removes the listener after its first call.
func WithOnce() ListenOption {
	return func(l *Listener) {
		l.once = true
	}
}

type delegation struct {
	to     *Emitter
	events []string
}

// Emitter dispatches named events synchronously. A listener registered for
// "change" also receives namespaced events such as "change:children".
type Emitter struct {
	owner     any
	listeners []*Listener
	nextSeq   uint64
	delegates []delegation
}

func newEmitter(owner any) *Emitter {
	return &Emitter{owner: owner}
}

// On registers callback for event.
func (e *Emitter) On(event string, callback Callback, opts ...ListenOption) *Listener {
	e.nextSeq++
	l := &Listener{
		emitter:  e,
		event:    event,
		callback: callback,
		priority: PriorityNormal,
		seq:      e.nextSeq,
	}
	for _, opt := range opts {
		opt(l)
	}
	e.listeners = append(e.listeners, l)
	sort.SliceStable(e.listeners, func(i, j int) bool {
		if e.listeners[i].priority != e.listeners[j].priority {
			return e.listeners[i].priority < e.listeners[j].priority
		}
		return e.listeners[i].seq < e.listeners[j].seq
	})
	return l
}

func (e *Emitter) remove(l *Listener) {
	for i, existing := range e.listeners {
		if existing == l {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// HasListeners reports whether any listener would receive event.
func (e *Emitter) HasListeners(event string) bool {
	for _, l := range e.listeners {
		if matchesEvent(l.event, event) {
			return true
		}
	}
	return false
}

// Fire dispatches event to the matching listeners and to delegated emitters.
func (e *Emitter) Fire(event string, args ...any) *EventInfo {
	evt := &EventInfo{Name: event, Source: e.owner}
	e.FireInfo(evt, args...)
	return evt
}

// FireInfo dispatches an already built event.
func (e *Emitter) FireInfo(evt *EventInfo, args ...any) {
	// Collect first so listeners may register or remove others while running.
	var matching []*Listener
	for _, l := range e.listeners {
		if matchesEvent(l.event, evt.Name) {
			matching = append(matching, l)
		}
	}

	for _, l := range matching {
		if l.removed {
			continue
		}
		if l.once {
			l.Off()
		}
		l.callback(evt, args...)
		if evt.stopped {
			break
		}
	}

	for _, d := range e.delegates {
		if !delegates(d.events, evt.Name) {
			continue
		}
		d.to.FireInfo(&EventInfo{Name: evt.Name, Source: d.to.owner}, args...)
	}
}

// Delegate re-fires the named events (all events when none are named) on to.
func (e *Emitter) Delegate(to *Emitter, events ...string) {
	e.delegates = append(e.delegates, delegation{to: to, events: events})
}

// StopDelegating removes every delegation to the given emitter.
func (e *Emitter) StopDelegating(to *Emitter) {
	kept := e.delegates[:0]
	for _, d := range e.delegates {
		if d.to != to {
			kept = append(kept, d)
		}
	}
	e.delegates = kept
}

func matchesEvent(registered, fired string) bool {
	return registered == fired || strings.HasPrefix(fired, registered+":")
}

func delegates(events []string, name string) bool {
	if len(events) == 0 {
		return true
	}
	for _, ev := range events {
		if matchesEvent(ev, name) {
			return true
		}
	}
	return false
}
