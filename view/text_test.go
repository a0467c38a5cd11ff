package view

import (
	"testing"

	"github.com/chrisuehlinger/viewtree/diff"
)

func TestText_SetData(t *testing.T) {
	tests := []struct {
		old, new string
	}{
		{"abc", "xaby"},
		{"", "new"},
		{"gone", ""},
		{"żółw", "żółty"},
		{"same prefix", "same suffix"},
	}

	for _, tt := range tests {
		doc := NewDocument()
		p := doc.CreateContainerElement("p", nil)
		text := doc.CreateText(tt.old)
		mustAppend(t, p, text.AsNode())

		var payload TextChange
		var events int
		p.AsNode().On("change:text", func(_ *EventInfo, args ...any) {
			events++
			if args[0] != text.AsNode() {
				t.Errorf("%q: the changed node should be the text", tt.old)
			}
			payload = args[1].(TextChange)
		})

		text.SetData(tt.new)
		text.SetData(tt.new)
		if events != 1 {
			t.Errorf("%q -> %q: expected one event, got %d", tt.old, tt.new, events)
		}
		if payload.OldData != tt.old || payload.NewData != tt.new {
			t.Errorf("unexpected payload %+v", payload)
		}
		got, err := diff.Apply([]rune(tt.old), payload.Changes)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if string(got) != tt.new {
			t.Errorf("applying %v to %q = %q, want %q", payload.Changes, tt.old, string(got), tt.new)
		}
		if text.Length() != len([]rune(tt.new)) {
			t.Errorf("Length = %d", text.Length())
		}
	}
}

func TestText_Substring(t *testing.T) {
	if got := substring("żółw", 1, 3); got != "ół" {
		t.Errorf("substring = %q", got)
	}
	if got := substring("abc", -1, 10); got != "abc" {
		t.Errorf("substring should clamp, got %q", got)
	}
}
