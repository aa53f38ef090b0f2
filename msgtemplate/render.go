package msgtemplate

import (
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	renderBufferDefaultCap = 256
	renderBufferMaxCap     = 16 << 10
	maxItemValue           = 1 << 20
)

var renderBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, renderBufferDefaultCap)
		return &buf
	},
}

func acquireRenderBuffer() *[]byte {
	buf := renderBufferPool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return buf
}

func releaseRenderBuffer(buf *[]byte) {
	if cap(*buf) > renderBufferMaxCap {
		return
	}
	renderBufferPool.Put(buf)
}

// Render substitutes args into the template. Each argument is prepared with
// FormatArgument and then formatted with FormatValue using the specifier
// written in the template. Missing arguments render as "(null)" and extra
// arguments are ignored.
func (t *Template) Render(args ...any) string {
	if len(t.names) == 0 {
		return unescapeBraces(t.format)
	}
	buf := acquireRenderBuffer()
	*buf = t.AppendRender(*buf, args...)
	out := string(*buf)
	releaseRenderBuffer(buf)
	return out
}

// AppendRender appends the rendered template to dst.
func (t *Template) AppendRender(dst []byte, args ...any) []byte {
	if len(t.names) == 0 {
		return appendUnescaped(dst, t.format)
	}
	return appendPositional(dst, t.format, args, "", "")
}

// AppendRenderHighlighted is AppendRender with every substituted value
// enclosed in before and after, typically a colour escape and its reset.
func (t *Template) AppendRenderHighlighted(dst []byte, before, after string, args ...any) []byte {
	if len(t.names) == 0 {
		return appendUnescaped(dst, t.format)
	}
	return appendPositional(dst, t.format, args, before, after)
}

func unescapeBraces(s string) string {
	if !strings.Contains(s, "{{") && !strings.Contains(s, "}}") {
		return s
	}
	return string(appendUnescaped(make([]byte, 0, len(s)), s))
}

func appendUnescaped(dst []byte, s string) []byte {
	last := 0
	for i := 0; i+1 < len(s); i++ {
		if (s[i] == '{' || s[i] == '}') && s[i+1] == s[i] {
			dst = append(dst, s[last:i+1]...)
			i++
			last = i + 1
		}
	}
	return append(dst, s[last:]...)
}

type formatItem struct {
	index     int
	alignment int
	format    string
}

// appendPositional expands {index[,alignment][:format]} items in format.
// Braces that do not open a well-formed item are copied as-is.
func appendPositional(dst []byte, format string, args []any, before, after string) []byte {
	n := len(format)
	last := 0
	i := 0
	for i < n {
		c := format[i]
		if c != '{' && c != '}' {
			i++
			continue
		}
		if i+1 < n && format[i+1] == c {
			dst = append(dst, format[last:i+1]...)
			i += 2
			last = i
			continue
		}
		if c == '}' {
			i++
			continue
		}
		item, next, ok := parseFormatItem(format, i)
		if !ok {
			i++
			continue
		}
		dst = append(dst, format[last:i]...)
		dst = append(dst, before...)
		dst = appendFormatItem(dst, item, args)
		dst = append(dst, after...)
		i = next
		last = i
	}
	return append(dst, format[last:]...)
}

// parseFormatItem parses the item whose '{' is at format[start]. It returns
// the index just past the closing brace. A format specifier ends at the first
// '}' and cannot contain braces; "}}" there is not an escape, so
// "{0:x}}y}" renders the item with format "x" followed by the text "}y}".
func parseFormatItem(format string, start int) (formatItem, int, bool) {
	var item formatItem
	n := len(format)
	i := start + 1
	digits := 0
	for i < n && format[i] >= '0' && format[i] <= '9' {
		item.index = item.index*10 + int(format[i]-'0')
		if item.index > maxItemValue {
			return item, 0, false
		}
		digits++
		i++
	}
	if digits == 0 {
		return item, 0, false
	}
	i = skipSpaces(format, i)
	if i < n && format[i] == ',' {
		i = skipSpaces(format, i+1)
		negative := false
		if i < n && format[i] == '-' {
			negative = true
			i++
		}
		width := 0
		digits = 0
		for i < n && format[i] >= '0' && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			if width > maxItemValue {
				return item, 0, false
			}
			digits++
			i++
		}
		if digits == 0 {
			return item, 0, false
		}
		if negative {
			width = -width
		}
		item.alignment = width
		i = skipSpaces(format, i)
	}
	if i < n && format[i] == ':' {
		end := strings.IndexByte(format[i+1:], '}')
		if end < 0 {
			return item, 0, false
		}
		item.format = format[i+1 : i+1+end]
		i += 1 + end
	}
	if i >= n || format[i] != '}' {
		return item, 0, false
	}
	return item, i + 1, true
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

func appendFormatItem(dst []byte, item formatItem, args []any) []byte {
	var value any
	if item.index < len(args) {
		value = args[item.index]
	}
	text := FormatValue(FormatArgument(value), item.format)
	if item.alignment == 0 {
		return append(dst, text...)
	}
	width := item.alignment
	leftAlign := width < 0
	if leftAlign {
		width = -width
	}
	pad := width - utf8.RuneCountInString(text)
	if pad <= 0 {
		return append(dst, text...)
	}
	if leftAlign {
		dst = append(dst, text...)
		return appendSpaces(dst, pad)
	}
	dst = appendSpaces(dst, pad)
	return append(dst, text...)
}

func appendSpaces(dst []byte, n int) []byte {
	for range n {
		dst = append(dst, ' ')
	}
	return dst
}
