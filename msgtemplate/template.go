package msgtemplate

import (
	"slices"
	"strconv"
	"strings"
)

// OriginalFormatKey names the synthetic trailing entry of LogValues that
// carries the raw, unrendered template.
const OriginalFormatKey = "{OriginalFormat}"

const formatDelimiters = ",:"

// compileScratchSize covers the common case of short templates without a heap
// allocation for the builder.
const compileScratchSize = 256

// Template is a compiled message template. Named placeholders are rewritten
// to positional indices ("User {Name}" becomes "User {0}") and the names are
// kept in order of appearance. A Template is immutable and safe to share.
type Template struct {
	raw    string
	format string
	names  []string
}

// Compile compiles raw without consulting any cache.
func Compile(raw string) *Template {
	return compile(raw)
}

func compile(raw string) *Template {
	end := len(raw)
	t := &Template{raw: raw}

	var scratch [compileScratchSize]byte
	buf := scratch[:0]
	var names []string

	scan := 0
	for scan < end {
		open := findBraceIndex(raw, '{', scan, end)
		if scan == 0 && open == end {
			t.format = raw
			return t
		}
		closing := findBraceIndex(raw, '}', open, end)
		if closing == end {
			buf = append(buf, raw[scan:end]...)
			scan = end
			continue
		}
		delim := findIndexOfAny(raw, formatDelimiters, open, closing)
		buf = append(buf, raw[scan:open+1]...)
		buf = strconv.AppendInt(buf, int64(len(names)), 10)
		names = append(names, raw[open+1:delim])
		buf = append(buf, raw[delim:closing+1]...)
		scan = closing + 1
	}

	t.format = string(buf)
	t.names = names
	return t
}

// Raw returns the template exactly as it was supplied.
func (t *Template) Raw() string { return t.raw }

// Format returns the positional form of the template.
func (t *Template) Format() string { return t.format }

// NumNames reports how many placeholders the template holds. Duplicate names
// count once per occurrence.
func (t *Template) NumNames() int { return len(t.names) }

// Name returns the placeholder name bound to positional index i.
func (t *Template) Name(i int) string { return t.names[i] }

// Names returns a copy of the placeholder names in positional order.
func (t *Template) Names() []string { return slices.Clone(t.names) }

// HasPlaceholders reports whether the template binds any arguments.
func (t *Template) HasPlaceholders() bool { return len(t.names) > 0 }

// Values pairs the template's placeholders with args. The view references
// args without copying it.
func (t *Template) Values(args ...any) LogValues {
	return LogValues{tmpl: t, args: args}
}

// Escape doubles every brace in s so that it compiles to a template without
// placeholders and renders back to s.
func Escape(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '{' || c == '}' {
			b.WriteByte(c)
		}
		b.WriteByte(c)
	}
	return b.String()
}
