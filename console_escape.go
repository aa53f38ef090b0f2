package tmplog

import (
	"encoding/binary"
	"unsafe"
)

func consoleByteUnsafe(b byte) bool {
	return b < 0x20 || b == ' ' || b == '\\' || b == '"' || b == 0x7f
}

func firstConsoleUnsafeIndex(s string) int {
	n := len(s)
	if n == 0 {
		return 0
	}
	src := unsafe.Slice(unsafe.StringData(s), n)
	i := 0
	for i+8 <= n {
		if chunkHasConsoleUnsafe(binary.LittleEndian.Uint64(src[i:])) {
			for j := range 8 {
				if consoleByteUnsafe(src[i+j]) {
					return i + j
				}
			}
		}
		i += 8
	}
	for ; i < n; i++ {
		if consoleByteUnsafe(src[i]) {
			return i
		}
	}
	return n
}

// needsQuote reports whether a console value must be quoted to stay a single
// token. Empty strings are quoted so the field stays visible.
func needsQuote(s string) bool {
	return s == "" || firstConsoleUnsafeIndex(s) != len(s)
}

func appendConsoleQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7f || c == '"' || c == '\\' {
			dst = appendConsoleEscapedChar(dst, c)
			continue
		}
		dst = append(dst, c)
	}
	return append(dst, '"')
}

// appendConsoleMessage copies a rendered message, escaping control bytes so
// an entry never spans more than one line. Quotes and spaces are kept.
func appendConsoleMessage(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7f {
			dst = appendConsoleEscapedChar(dst, c)
			continue
		}
		dst = append(dst, c)
	}
	return dst
}

func hasConsoleControl(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}

func appendConsoleEscapedChar(dst []byte, c byte) []byte {
	const hex = "0123456789abcdef"
	switch c {
	case '\\', '"':
		return append(dst, '\\', c)
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	default:
		return append(dst, '\\', 'x', hex[c>>4], hex[c&0x0f])
	}
}
