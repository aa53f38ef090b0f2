package msgtemplate_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pkt.systems/tmplog/msgtemplate"
)

func TestCacheCompileIsIdempotent(t *testing.T) {
	c := msgtemplate.NewCache(8)
	first := c.Compile("User {Name} from {Address}")
	second := c.Compile("User {Name} from {Address}")
	if first != second {
		t.Fatalf("expected the cached template to be returned on the second call")
	}
	if first.Format() != second.Format() {
		t.Fatalf("format mismatch: %q vs %q", first.Format(), second.Format())
	}
	if diff := cmp.Diff(first.Names(), second.Names()); diff != "" {
		t.Fatalf("names mismatch (-first +second):\n%s", diff)
	}

	var s msgtemplate.Stats
	c.UpdateStats(&s)
	want := msgtemplate.Stats{Compiles: 2, Hits: 1, Misses: 1, EntriesCount: 1, MaxEntries: 8}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheStopsGrowingAtCapacity(t *testing.T) {
	c := msgtemplate.NewCache(2)
	c.Compile("a {X}")
	c.Compile("b {X}")
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	overflow := c.Compile("c {X}")
	if got := overflow.Render("z"); got != "c z" {
		t.Fatalf("uncached template rendered %q", got)
	}
	again := c.Compile("c {X}")
	if again == overflow {
		t.Fatalf("expected a fresh compile once the cache is full")
	}
	if got := again.Render("y"); got != "c y" {
		t.Fatalf("uncached template rendered %q", got)
	}

	// Entries stored before the cache filled up are still served.
	cached := c.Compile("a {X}")
	if cached != c.Compile("a {X}") {
		t.Fatalf("expected cached entry to be stable")
	}

	var s msgtemplate.Stats
	c.UpdateStats(&s)
	if s.Uncached != 2 {
		t.Fatalf("expected 2 uncached compiles, got %d", s.Uncached)
	}
	if s.EntriesCount != 2 || c.Len() != 2 {
		t.Fatalf("cache grew past capacity: stats=%d len=%d", s.EntriesCount, c.Len())
	}
	if s.Hits != 2 || s.Misses != 4 {
		t.Fatalf("unexpected hit/miss counts: %+v", s)
	}

	s.Reset()
	if s != (msgtemplate.Stats{}) {
		t.Fatalf("Reset left values behind: %+v", s)
	}
}

func TestNewCachePanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for zero capacity")
		}
	}()
	msgtemplate.NewCache(0)
}

func TestDefaultCacheIsShared(t *testing.T) {
	if msgtemplate.Default() != msgtemplate.Default() {
		t.Fatalf("Default returned different caches")
	}
	if msgtemplate.Default().MaxEntries() != msgtemplate.DefaultMaxEntries {
		t.Fatalf("unexpected default capacity %d", msgtemplate.Default().MaxEntries())
	}
}

func TestCacheConcurrentCompile(t *testing.T) {
	const (
		workers    = 16
		iterations = 200
		distinct   = 300
		capacity   = 64
	)
	c := msgtemplate.NewCache(capacity)
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range iterations {
				n := (w*iterations + i) % distinct
				raw := fmt.Sprintf("key-%d {Value}", n)
				got := c.Compile(raw).Render(n)
				want := fmt.Sprintf("key-%d %d", n, n)
				if got != want {
					errs <- fmt.Sprintf("got %q want %q", got, want)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
	if c.Len() != capacity {
		t.Fatalf("expected cache to fill to %d entries, got %d", capacity, c.Len())
	}
	var s msgtemplate.Stats
	c.UpdateStats(&s)
	if s.Compiles != workers*iterations {
		t.Fatalf("expected %d compiles, got %d", workers*iterations, s.Compiles)
	}
}
