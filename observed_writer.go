package tmplog

import (
	"io"
	"sync/atomic"
)

// WriteFailure describes one log line that did not reach its destination.
type WriteFailure struct {
	Err       error
	Written   int
	Attempted int
}

// ObservedWriterStats counts lines lost by an ObservedWriter.
type ObservedWriterStats struct {
	Failures    uint64
	ShortWrites uint64
	LostBytes   uint64
}

// ObservedWriter wraps the destination of a logger and reports failed writes.
// Loggers drop write errors, so wrapping the output is the way to notice lost
// entries.
type ObservedWriter struct {
	dst        io.Writer
	onFailure  func(WriteFailure)
	failures   atomic.Uint64
	shortWrite atomic.Uint64
	lostBytes  atomic.Uint64
}

// NewObservedWriter wraps dst. onFailure, when set, is called synchronously
// for every failed write.
func NewObservedWriter(dst io.Writer, onFailure func(WriteFailure)) *ObservedWriter {
	if dst == nil {
		dst = io.Discard
	}
	return &ObservedWriter{dst: dst, onFailure: onFailure}
}

func (w *ObservedWriter) Write(p []byte) (int, error) {
	n, err := w.dst.Write(p)
	if n != len(p) {
		w.shortWrite.Add(1)
		if err == nil {
			err = io.ErrShortWrite
		}
	}
	if err == nil {
		return n, nil
	}
	w.failures.Add(1)
	if n < len(p) {
		w.lostBytes.Add(uint64(len(p) - max(n, 0)))
	}
	if w.onFailure != nil {
		w.onFailure(WriteFailure{Err: err, Written: n, Attempted: len(p)})
	}
	return n, err
}

// Stats returns the cumulative counters.
func (w *ObservedWriter) Stats() ObservedWriterStats {
	return ObservedWriterStats{
		Failures:    w.failures.Load(),
		ShortWrites: w.shortWrite.Load(),
		LostBytes:   w.lostBytes.Load(),
	}
}

// Close closes the wrapped destination when the logger owns it.
func (w *ObservedWriter) Close() error {
	return closeOutput(w.dst)
}

func (w *ObservedWriter) closeOwned() error {
	return closeOutput(w.dst)
}
