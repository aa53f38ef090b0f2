package tmplog

import (
	"io"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"pkt.systems/tmplog/ansi"
)

const (
	lineWriterDefaultCap   = 1024
	lineWriterFlushTrigger = 8 << 10 // flush once a line exceeds 8KiB
	lineWriterMaxCap       = 64 << 10
)

type lineWriter struct {
	dst       io.Writer
	buf       []byte
	lastLen   int
	autoFlush bool
	floatBits uint64
	floatLen  int
	floatBuf  [32]byte
}

var lineWriterPool = sync.Pool{
	New: func() any {
		return &lineWriter{buf: make([]byte, 0, lineWriterDefaultCap)}
	},
}

func acquireLineWriter(dst io.Writer) *lineWriter {
	lw := lineWriterPool.Get().(*lineWriter)
	lw.dst = dst
	lw.buf = lw.buf[:0]
	lw.lastLen = 0
	lw.autoFlush = true
	return lw
}

func releaseLineWriter(lw *lineWriter) {
	lw.dst = nil
	if cap(lw.buf) > lineWriterMaxCap {
		lw.buf = make([]byte, 0, lineWriterDefaultCap)
	} else {
		lw.buf = lw.buf[:0]
	}
	lw.floatLen = 0
	lw.autoFlush = true
	lw.lastLen = 0
	lineWriterPool.Put(lw)
}

func (lw *lineWriter) reserve(n int) {
	if n <= 0 {
		return
	}
	need := len(lw.buf) + n
	if need <= cap(lw.buf) {
		return
	}
	newCap := max(cap(lw.buf)*2+n, need)
	if newCap > lineWriterMaxCap {
		newCap = need
	}
	newBuf := make([]byte, len(lw.buf), newCap)
	copy(newBuf, lw.buf)
	lw.buf = newBuf
}

func (lw *lineWriter) preallocate(n int) {
	if n <= 0 || len(lw.buf) != 0 {
		return
	}
	if n > lineWriterMaxCap {
		n = lineWriterMaxCap
	}
	lw.reserve(n)
}

func (lw *lineWriter) writeByte(b byte) {
	lw.reserve(1)
	lw.buf = append(lw.buf, b)
	lw.maybeFlush()
}

func (lw *lineWriter) writeString(s string) {
	if s == "" {
		return
	}
	lw.reserve(len(s))
	lw.buf = append(lw.buf, s...)
	lw.maybeFlush()
}

func (lw *lineWriter) writeBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	lw.reserve(len(b))
	lw.buf = append(lw.buf, b...)
	lw.maybeFlush()
}

func (lw *lineWriter) writeInt64(n int64) {
	lw.reserve(24)
	lw.buf = strconv.AppendInt(lw.buf, n, 10)
	lw.maybeFlush()
}

func (lw *lineWriter) writeUint64(n uint64) {
	lw.reserve(24)
	lw.buf = strconv.AppendUint(lw.buf, n, 10)
	lw.maybeFlush()
}

// writeFloat64 remembers the last value it formatted; repeated gauges on one
// line are common.
func (lw *lineWriter) writeFloat64(f float64) {
	bits := math.Float64bits(f)
	if lw.floatLen > 0 && lw.floatBits == bits {
		lw.writeBytes(lw.floatBuf[:lw.floatLen])
		return
	}
	start := len(lw.buf)
	lw.reserve(32)
	lw.buf = strconv.AppendFloat(lw.buf, f, 'f', -1, 64)
	if n := len(lw.buf) - start; n <= len(lw.floatBuf) {
		lw.floatBits = bits
		lw.floatLen = copy(lw.floatBuf[:], lw.buf[start:])
	}
	lw.maybeFlush()
}

func (lw *lineWriter) writeBool(v bool) {
	if v {
		lw.writeString("true")
		return
	}
	lw.writeString("false")
}

func (lw *lineWriter) writeColored(color, s string) {
	if color == "" {
		lw.writeString(s)
		return
	}
	lw.reserve(len(color) + len(s) + len(ansi.Reset))
	lw.buf = append(lw.buf, color...)
	lw.buf = append(lw.buf, s...)
	lw.buf = append(lw.buf, ansi.Reset...)
	lw.maybeFlush()
}

func (lw *lineWriter) finishLine() {
	lw.writeByte('\n')
}

func (lw *lineWriter) commit() {
	lw.flush()
}

func (lw *lineWriter) flush() {
	if len(lw.buf) == 0 || lw.dst == nil {
		lw.lastLen = 0
		lw.buf = lw.buf[:0]
		return
	}
	lw.lastLen = len(lw.buf)
	_, _ = lw.dst.Write(lw.buf)
	lw.buf = lw.buf[:0]
}

func (lw *lineWriter) maybeFlush() {
	if !lw.autoFlush {
		return
	}
	if cap(lw.buf) <= lineWriterFlushTrigger {
		return
	}
	if len(lw.buf) >= lineWriterFlushTrigger {
		lw.flush()
	}
}

// lineHint tracks the longest line a logger has produced so the next line can
// be preallocated in one step.
type lineHint struct {
	n *atomic.Int64
}

func newLineHint(seed int64) lineHint {
	h := lineHint{n: new(atomic.Int64)}
	h.n.Store(seed)
	return h
}

func (h lineHint) load() int64 {
	if h.n == nil {
		return 0
	}
	return h.n.Load()
}

func (h lineHint) record(n int) {
	if n <= 0 || h.n == nil {
		return
	}
	if int64(n) > h.n.Load() {
		h.n.Store(int64(n))
	}
}

// acquire returns a pooled writer for dst, sized from the hint.
func (h lineHint) acquire(dst io.Writer) *lineWriter {
	lw := acquireLineWriter(dst)
	lw.autoFlush = false
	if hint := h.load(); hint > 0 {
		lw.preallocate(int(hint))
	}
	return lw
}

// release ends the line, writes it and returns lw to the pool.
func (h lineHint) release(lw *lineWriter) {
	lw.finishLine()
	lw.commit()
	h.record(lw.lastLen)
	releaseLineWriter(lw)
}
