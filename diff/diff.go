// Package diff computes alignments between two sequences and compresses them
// into edit scripts: ordered inserts and deletes that turn the input
// sequence into the output sequence when replayed.
package diff

import (
	"strconv"

	"github.com/pmezard/go-difflib/difflib"
)

// Opcode is one step of an alignment between an input and an output
// sequence.
type Opcode uint8

const (
	// Equal keeps one input item, which is also the next output item.
	Equal Opcode = iota
	// Insert adds the next output item.
	Insert
	// Delete drops one input item.
	Delete
)

// String returns the string representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Diff aligns a with b and returns one opcode per kept, inserted or deleted
// item. Replaced blocks come out as their deletes followed by their inserts.
func Diff[T comparable](a, b []T) []Opcode {
	ids := make(map[T]string)
	intern := func(items []T) []string {
		keys := make([]string, len(items))
		for i, item := range items {
			id, ok := ids[item]
			if !ok {
				id = strconv.Itoa(len(ids))
				ids[item] = id
			}
			keys[i] = id
		}
		return keys
	}
	return DiffStrings(intern(a), intern(b))
}

// DiffFunc aligns a with b, comparing items by the key function.
func DiffFunc[T any](a, b []T, key func(T) string) []Opcode {
	keys := func(items []T) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = key(item)
		}
		return out
	}
	return DiffStrings(keys(a), keys(b))
}

// DiffStrings aligns two string sequences.
func DiffStrings(a, b []string) []Opcode {
	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)

	var ops []Opcode
	for _, code := range matcher.GetOpCodes() {
		deleted := code.I2 - code.I1
		inserted := code.J2 - code.J1
		switch code.Tag {
		case 'e':
			ops = appendRepeated(ops, Equal, deleted)
		case 'd':
			ops = appendRepeated(ops, Delete, deleted)
		case 'i':
			ops = appendRepeated(ops, Insert, inserted)
		case 'r':
			ops = appendRepeated(ops, Delete, deleted)
			ops = appendRepeated(ops, Insert, inserted)
		}
	}
	return ops
}

func appendRepeated(ops []Opcode, op Opcode, n int) []Opcode {
	for i := 0; i < n; i++ {
		ops = append(ops, op)
	}
	return ops
}
