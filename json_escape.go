package tmplog

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

var jsonNeedsEscape = func() [256]bool {
	var table [256]bool
	for i := range 0x20 {
		table[i] = true
	}
	table['"'] = true
	table['\\'] = true
	table['<'] = true
	table['\''] = true
	return table
}()

// appendEscapedStringContent appends s to lw with JSON string escaping, eight
// bytes at a time while no escape is needed.
func appendEscapedStringContent(lw *lineWriter, s string) {
	n := len(s)
	if n == 0 {
		return
	}
	src := unsafe.Slice(unsafe.StringData(s), n)
	lastSafe := 0
	scan := 0
	for scan+8 <= n {
		mask := chunkJSONUnsafeMask(binary.LittleEndian.Uint64(src[scan:]))
		if mask == 0 {
			scan += 8
			continue
		}
		pos := scan + bits.TrailingZeros64(mask)>>3
		if lastSafe < pos {
			lw.buf = append(lw.buf, s[lastSafe:pos]...)
		}
		appendEscapedChar(lw, s[pos])
		lastSafe = pos + 1
		scan = pos + 1
	}
	for ; scan < n; scan++ {
		c := s[scan]
		if !jsonNeedsEscape[c] {
			continue
		}
		if lastSafe < scan {
			lw.buf = append(lw.buf, s[lastSafe:scan]...)
		}
		appendEscapedChar(lw, c)
		lastSafe = scan + 1
	}
	if lastSafe < n {
		lw.buf = append(lw.buf, s[lastSafe:]...)
	}
}

func appendEscapedChar(lw *lineWriter, c byte) {
	const hex = "0123456789abcdef"
	switch c {
	case '\\', '"':
		lw.buf = append(lw.buf, '\\', c)
	case '\b':
		lw.buf = append(lw.buf, '\\', 'b')
	case '\f':
		lw.buf = append(lw.buf, '\\', 'f')
	case '\n':
		lw.buf = append(lw.buf, '\\', 'n')
	case '\r':
		lw.buf = append(lw.buf, '\\', 'r')
	case '\t':
		lw.buf = append(lw.buf, '\\', 't')
	default:
		lw.buf = append(lw.buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0x0f])
	}
}

// writeJSONString writes s as a quoted JSON string.
func writeJSONString(lw *lineWriter, s string) {
	lw.reserve(len(s) + 2)
	lw.buf = append(lw.buf, '"')
	appendEscapedStringContent(lw, s)
	lw.buf = append(lw.buf, '"')
	lw.maybeFlush()
}

// writeJSONKey writes a quoted key followed by a colon.
func writeJSONKey(lw *lineWriter, key string) {
	writeJSONString(lw, key)
	lw.writeByte(':')
}

func appendJSONKeyData(dst []byte, key string, leadingComma bool) []byte {
	lw := acquireLineWriter(nil)
	lw.autoFlush = false
	if leadingComma {
		lw.buf = append(lw.buf, ',')
	}
	writeJSONKey(lw, key)
	dst = append(dst, lw.buf...)
	releaseLineWriter(lw)
	return dst
}
