package view

import (
	"unicode/utf8"

	"github.com/chrisuehlinger/viewtree/diff"
)

// Text represents a text node. Offsets inside text count characters.
type Text Node

// TextChange is the payload of a "change:text" event. Changes is the
// compressed character edit script turning OldData into NewData.
type TextChange struct {
	OldData string
	NewData string
	Changes []diff.Change[rune]
}

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node {
	return (*Node)(t)
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.data
}

// SetData replaces the text content and fires "change:text".
func (t *Text) SetData(data string) {
	if data == t.data {
		return
	}
	old := t.data
	t.data = data

	changes := diff.Script([]rune(old), []rune(data))
	t.AsNode().fireChange(ChangeText, t.AsNode(), TextChange{OldData: old, NewData: data, Changes: changes})
}

// Length returns the number of characters.
func (t *Text) Length() int {
	return textLength(t.data)
}

// IsSimilar reports whether other has the same data.
func (t *Text) IsSimilar(other *Text) bool {
	return other != nil && t.data == other.data
}

func textLength(s string) int {
	return utf8.RuneCountInString(s)
}

// substring returns the characters in [start, end).
func substring(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
