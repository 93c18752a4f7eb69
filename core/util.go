package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SplitList splits a comma or semicolon separated list, dropping blank items.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}

// OptionSep separates an id from its display name in option labels.
const OptionSep = " — "

// Option is one "<id> — <name>" entry of a picker list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func NewOption(id, name string) Option {
	return Option{Value: id, Label: id + OptionSep + name}
}

// ParseOption returns the id part of an option label; a bare id is returned as is.
func ParseOption(label string) string {
	return strings.TrimSpace(strings.SplitN(label, OptionSep, 2)[0])
}
