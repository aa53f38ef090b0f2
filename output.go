package tmplog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ownedCloser is implemented by outputs the logger opened itself and is
// therefore responsible for closing.
type ownedCloser interface {
	closeOwned() error
}

type ownedOutput struct {
	writer   io.Writer
	closer   io.Closer
	closeErr error
	once     sync.Once
}

func newOwnedOutput(writer io.Writer, closer io.Closer) io.Writer {
	if writer == nil {
		writer = io.Discard
	}
	if closer == nil {
		return writer
	}
	if existing, ok := writer.(*ownedOutput); ok {
		return existing
	}
	return &ownedOutput{writer: writer, closer: closer}
}

func (o *ownedOutput) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

// Close closes the underlying file once; later calls return the first result.
func (o *ownedOutput) Close() error {
	return o.closeOwned()
}

func (o *ownedOutput) closeOwned() error {
	o.once.Do(func() {
		if o.closer != nil {
			o.closeErr = o.closer.Close()
		}
	})
	return o.closeErr
}

// teeWriter copies each line to every writer, stopping at the first failure.
type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) io.Writer {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	for _, w := range t.writers {
		n, err := w.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// closeOutput closes w when the logger owns it. Caller supplied writers and
// the standard streams are left open.
func closeOutput(w io.Writer) error {
	if w == nil || w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(ownedCloser); ok {
		return c.closeOwned()
	}
	return nil
}

// Close closes the output owned by logger, if any. Loggers built around a
// caller supplied writer have nothing to close and return nil.
func Close(logger Base) error {
	c, ok := logger.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("close logger output: %w", err)
	}
	return nil
}

func openLogOutputFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log output %q: %w", path, err)
	}
	return file, nil
}
