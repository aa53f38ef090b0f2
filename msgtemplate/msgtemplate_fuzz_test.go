package msgtemplate_test

import (
	"strings"
	"testing"

	"pkt.systems/tmplog/msgtemplate"
)

func FuzzCompileRender(f *testing.F) {
	for _, seed := range []string{
		"", "hello", "{A}", "{{A}}", "{{{A}}}", "{A,5:N2}", "{", "}", "{A} {", "}}{{", "a } {B}",
	} {
		f.Add(seed, "value")
	}
	f.Fuzz(func(t *testing.T, raw, arg string) {
		tmpl := msgtemplate.Compile(raw)
		args := make([]any, tmpl.NumNames())
		for i := range args {
			args[i] = arg
		}
		rendered := tmpl.Render(args...)
		view := tmpl.Values(args...)
		if view.Len() != tmpl.NumNames()+1 {
			t.Fatalf("view length %d for %d names", view.Len(), tmpl.NumNames())
		}
		if last := view.At(view.Len() - 1); last.Value != raw {
			t.Fatalf("original format entry %q, want %q", last.Value, raw)
		}
		if view.String() != rendered {
			t.Fatalf("view rendering %q differs from Render %q", view.String(), rendered)
		}
		if !strings.ContainsAny(raw, "{}") && rendered != raw {
			t.Fatalf("literal template changed: %q -> %q", raw, rendered)
		}
		if msgtemplate.Default().Compile(raw).Format() != tmpl.Format() {
			t.Fatalf("cached compile differs for %q", raw)
		}
	})
}
