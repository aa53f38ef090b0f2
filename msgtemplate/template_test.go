package msgtemplate_test

import (
	"strconv"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"pkt.systems/tmplog/msgtemplate"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		raw    string
		format string
		names  []string
	}{
		{"hello world", "hello world", nil},
		{"", "", nil},
		{"User {UserName} logged in", "User {0} logged in", []string{"UserName"}},
		{"{B} and {A} and {B}", "{0} and {1} and {2}", []string{"B", "A", "B"}},
		{"{{literal}}", "{{literal}}", nil},
		{"{{{Name}}}", "{{{0}}}", []string{"Name"}},
		{"Value: {Amount:C2}", "Value: {0:C2}", []string{"Amount"}},
		{"{Name,-10:x}|", "{0,-10:x}|", []string{"Name"}},
		{"{Name:a,b}", "{0:a,b}", []string{"Name"}},
		{"Trailing {Open", "Trailing {Open", nil},
		{"{A} then {B", "{0} then {B", []string{"A"}},
		{"a } {B}", "a } {0}", []string{"B"}},
		{"{}", "{0}", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tmpl := msgtemplate.Compile(tt.raw)
			if tmpl.Raw() != tt.raw {
				t.Fatalf("raw mismatch: got %q want %q", tmpl.Raw(), tt.raw)
			}
			if tmpl.Format() != tt.format {
				t.Fatalf("format mismatch: got %q want %q", tmpl.Format(), tt.format)
			}
			if diff := cmp.Diff(tt.names, tmpl.Names()); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
			if tmpl.NumNames() != len(tt.names) {
				t.Fatalf("NumNames = %d, want %d", tmpl.NumNames(), len(tt.names))
			}
			if tmpl.HasPlaceholders() != (len(tt.names) > 0) {
				t.Fatalf("HasPlaceholders = %v for %q", tmpl.HasPlaceholders(), tt.raw)
			}
		})
	}
}

func TestCompileWithoutPlaceholdersKeepsRawString(t *testing.T) {
	raw := string([]byte("nothing to see here"))
	tmpl := msgtemplate.Compile(raw)
	if unsafe.StringData(tmpl.Format()) != unsafe.StringData(raw) {
		t.Fatalf("expected the compiled form to share the raw string")
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	tmpl := msgtemplate.Compile("{A} {B}")
	names := tmpl.Names()
	names[0] = "mutated"
	if tmpl.Name(0) != "A" {
		t.Fatalf("template names were mutated through Names(): %q", tmpl.Name(0))
	}
}

func TestCompileLongTemplate(t *testing.T) {
	raw := ""
	want := ""
	var names []string
	for i := range 64 {
		raw += "segment {Field} "
		want += "segment {" + strconv.Itoa(i) + "} "
		names = append(names, "Field")
	}
	tmpl := msgtemplate.Compile(raw)
	if tmpl.Format() != want {
		t.Fatalf("format mismatch: got %q want %q", tmpl.Format(), want)
	}
	if diff := cmp.Diff(names, tmpl.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestEscapeRoundTrips(t *testing.T) {
	for _, s := range []string{"", "plain", "{a}", "}{", "map[{x}:{{y}}]", "{{{"} {
		escaped := msgtemplate.Escape(s)
		tmpl := msgtemplate.Compile(escaped)
		if tmpl.HasPlaceholders() {
			t.Fatalf("escaped %q still has placeholders: %v", s, tmpl.Names())
		}
		if got := tmpl.Render(); got != s {
			t.Fatalf("Escape(%q) rendered %q", s, got)
		}
	}
}
