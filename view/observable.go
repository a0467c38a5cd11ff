package view

// Observable holds a value and fires "change:<name>" on its emitter with the
// new and old value whenever Set changes it.
type Observable[T comparable] struct {
	name    string
	value   T
	emitter *Emitter
}

func newObservable[T comparable](emitter *Emitter, name string, initial T) *Observable[T] {
	return &Observable[T]{name: name, value: initial, emitter: emitter}
}

// Name returns the property name.
func (o *Observable[T]) Name() string {
	return o.name
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	return o.value
}

// Set stores value and fires the change event if it differs.
func (o *Observable[T]) Set(value T) {
	if o.value == value {
		return
	}
	old := o.value
	o.value = value
	o.emitter.Fire("change:"+o.name, value, old)
}
