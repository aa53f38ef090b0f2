package tmplog_test

import (
	"errors"
	"testing"

	"pkt.systems/tmplog"
)

type failingWriter struct {
	short bool
}

func (w failingWriter) Write(p []byte) (int, error) {
	if w.short {
		return len(p) / 2, nil
	}
	return 0, errors.New("disk full")
}

func TestObservedWriterCountsLostLines(t *testing.T) {
	var failures []tmplog.WriteFailure
	w := tmplog.NewObservedWriter(failingWriter{}, func(f tmplog.WriteFailure) {
		failures = append(failures, f)
	})
	logger := tmplog.NewWithOptions(w, tmplog.Options{Mode: tmplog.ModeStructured, DisableTimestamp: true})
	logger.Info("lost {N}", 1)
	logger.Info("lost {N}", 2)

	stats := w.Stats()
	if stats.Failures != 2 || stats.ShortWrites != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(failures) != 2 || failures[0].Written != 0 || failures[0].Attempted == 0 {
		t.Fatalf("unexpected failures %+v", failures)
	}
	if stats.LostBytes != uint64(failures[0].Attempted+failures[1].Attempted) {
		t.Fatalf("lost bytes %d do not match attempts %+v", stats.LostBytes, failures)
	}
}

func TestObservedWriterShortWrite(t *testing.T) {
	w := tmplog.NewObservedWriter(failingWriter{short: true}, nil)
	logger := tmplog.NewWithOptions(w, tmplog.Options{DisableTimestamp: true, NoColor: true})
	logger.Info("short")

	stats := w.Stats()
	if stats.Failures != 1 || stats.ShortWrites != 1 || stats.LostBytes == 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if err := tmplog.Close(logger); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
}
