package diff

import (
	"errors"
	"fmt"
)

// ChangeType tells whether a Change inserts or deletes.
type ChangeType uint8

const (
	ChangeInsert ChangeType = iota + 1
	ChangeDelete
)

// String returns the string representation of the ChangeType.
func (t ChangeType) String() string {
	switch t {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one step of an edit script. Inserts carry Values, deletes carry
// HowMany. Index is an offset into the sequence as already edited by the
// preceding changes.
type Change[T any] struct {
	Type    ChangeType
	Index   int
	Values  []T
	HowMany int
}

// String formats the change as {insert,0,[x]} or {delete,3,1}.
func (c Change[T]) String() string {
	if c.Type == ChangeInsert {
		return fmt.Sprintf("{insert,%d,%v}", c.Index, c.Values)
	}
	return fmt.Sprintf("{delete,%d,%d}", c.Index, c.HowMany)
}

var (
	// ErrOutputExhausted is returned when the opcodes consume more output
	// items than the output holds.
	ErrOutputExhausted = errors.New("diff: opcodes reference more output items than given")
	// ErrOutOfRange is returned when a change does not fit the sequence it
	// is applied to.
	ErrOutOfRange = errors.New("diff: change out of range")
)

// ToChanges compresses an alignment into an edit script. Runs of inserts
// and runs of deletes each become one change. The cursor advances on equal
// and insert opcodes, not on deletes, so every Index is valid when the
// changes are replayed in order.
func ToChanges[T any](ops []Opcode, output []T) ([]Change[T], error) {
	var (
		changes []Change[T]
		pending *Change[T]
		index   int
		out     int
	)
	flush := func() {
		if pending != nil {
			changes = append(changes, *pending)
			pending = nil
		}
	}

	for _, op := range ops {
		switch op {
		case Equal:
			flush()
			index++
			out++
		case Insert:
			if out >= len(output) {
				return nil, ErrOutputExhausted
			}
			if pending == nil || pending.Type != ChangeInsert {
				flush()
				pending = &Change[T]{Type: ChangeInsert, Index: index}
			}
			pending.Values = append(pending.Values, output[out])
			index++
			out++
		case Delete:
			if pending == nil || pending.Type != ChangeDelete {
				flush()
				pending = &Change[T]{Type: ChangeDelete, Index: index}
			}
			pending.HowMany++
		default:
			return nil, fmt.Errorf("diff: unknown opcode %d", op)
		}
	}
	flush()
	return changes, nil
}

// Apply replays changes against input and returns the edited copy.
func Apply[T any](input []T, changes []Change[T]) ([]T, error) {
	result := append([]T(nil), input...)
	for _, change := range changes {
		switch change.Type {
		case ChangeInsert:
			if change.Index < 0 || change.Index > len(result) {
				return nil, fmt.Errorf("%w: insert at %d into %d items", ErrOutOfRange, change.Index, len(result))
			}
			tail := append(append([]T(nil), change.Values...), result[change.Index:]...)
			result = append(result[:change.Index], tail...)
		case ChangeDelete:
			if change.Index < 0 || change.HowMany < 0 || change.Index+change.HowMany > len(result) {
				return nil, fmt.Errorf("%w: delete %d at %d from %d items", ErrOutOfRange, change.HowMany, change.Index, len(result))
			}
			result = append(result[:change.Index], result[change.Index+change.HowMany:]...)
		default:
			return nil, fmt.Errorf("diff: unknown change type %d", change.Type)
		}
	}
	return result, nil
}

// Script aligns input with output and compresses the alignment.
func Script[T comparable](input, output []T) []Change[T] {
	// The alignment is built from output itself, so it never runs short.
	changes, _ := ToChanges(Diff(input, output), output)
	return changes
}
