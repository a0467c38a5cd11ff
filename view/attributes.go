package view

import (
	"sort"
	"strings"
)

// attributes stores element attributes. "class" and "style" are kept as a
// set and a map and surfaced as single string values.
type attributes struct {
	keys    []string
	values  map[string]string
	classes []string
	styles  map[string]string
}

func newAttributes() *attributes {
	return &attributes{
		values: make(map[string]string),
		styles: make(map[string]string),
	}
}

func (a *attributes) get(key string) (string, bool) {
	switch key {
	case "class":
		if len(a.classes) == 0 {
			return "", false
		}
		return strings.Join(a.classes, " "), true
	case "style":
		if len(a.styles) == 0 {
			return "", false
		}
		return styleString(a.styles), true
	}
	value, ok := a.values[key]
	return value, ok
}

func (a *attributes) set(key, value string) {
	switch key {
	case "class":
		a.classes = nil
		a.addClasses(strings.Fields(value))
	case "style":
		a.styles = parseStyle(value)
	default:
		if _, ok := a.values[key]; !ok {
			a.keys = append(a.keys, key)
		}
		a.values[key] = value
	}
}

func (a *attributes) remove(key string) bool {
	switch key {
	case "class":
		had := len(a.classes) > 0
		a.classes = nil
		return had
	case "style":
		had := len(a.styles) > 0
		a.styles = make(map[string]string)
		return had
	}
	if _, ok := a.values[key]; !ok {
		return false
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return true
}

// orderedKeys returns class and style first, then other keys in insertion
// order.
func (a *attributes) orderedKeys() []string {
	keys := make([]string, 0, len(a.keys)+2)
	if len(a.classes) > 0 {
		keys = append(keys, "class")
	}
	if len(a.styles) > 0 {
		keys = append(keys, "style")
	}
	return append(keys, a.keys...)
}

func (a *attributes) size() int {
	return len(a.orderedKeys())
}

func (a *attributes) hasClass(name string) bool {
	for _, c := range a.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (a *attributes) addClasses(names []string) bool {
	changed := false
	for _, name := range names {
		if name == "" || a.hasClass(name) {
			continue
		}
		a.classes = append(a.classes, name)
		changed = true
	}
	return changed
}

func (a *attributes) removeClasses(names []string) bool {
	changed := false
	for _, name := range names {
		for i, c := range a.classes {
			if c == name {
				a.classes = append(a.classes[:i], a.classes[i+1:]...)
				changed = true
				break
			}
		}
	}
	return changed
}

// parseStyle parses an inline style declaration such as "color:red;margin:0".
func parseStyle(value string) map[string]string {
	styles := make(map[string]string)
	for _, decl := range strings.Split(value, ";") {
		name, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		val = strings.TrimSpace(val)
		if name == "" || val == "" {
			continue
		}
		styles[name] = val
	}
	return styles
}

// styleString serializes styles sorted by property name.
func styleString(styles map[string]string) string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte(':')
		sb.WriteString(styles[name])
		sb.WriteByte(';')
	}
	return sb.String()
}

// IsValidAttributeName checks if a string is a valid attribute name.
// A name is valid if it is not empty and does not contain ASCII whitespace,
// U+0000 NULL, "/", "=", ">", quotes or "<".
func IsValidAttributeName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '\x00', '/', '=', '>', '<', '"', '\'':
			return false
		}
	}
	return true
}
