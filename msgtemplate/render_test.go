package msgtemplate_test

import (
	"errors"
	"iter"
	"net"
	"testing"
	"time"

	"pkt.systems/tmplog/msgtemplate"
)

type ring struct {
	items []string
}

func (r ring) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, item := range r.items {
			if !yield(item) {
				return
			}
		}
	}
}

type money struct {
	cents int64
}

func (m money) FormatTemplate(format string) string {
	return "money[" + format + "]"
}

type amount float64

type count int

func TestRender(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]int
	tests := []struct {
		name string
		raw  string
		args []any
		want string
	}{
		{"literal", "hello world", nil, "hello world"},
		{"literal ignores args", "hello world", []any{1, 2}, "hello world"},
		{"order and duplicates", "{B} and {A} and {B}", []any{"x", "y", "z"}, "x and y and z"},
		{"escaped braces", "{{literal}}", nil, "{literal}"},
		{"escaped around placeholder", "{{{Name}}}", []any{"v"}, "{v}"},
		{"unterminated tail", "{A} then {B", []any{1}, "1 then {B"},
		{"stray close", "a } {B}", []any{"x"}, "a } x"},
		{"unterminated only", "Trailing {Open", []any{"x"}, "Trailing {Open"},
		{"sequence with null", "Items: {List}", []any{[]any{1, 2, nil, 3}}, "Items: 1, 2, (null), 3"},
		{"typed int slice", "{List}", []any{[]int{4, 5}}, "4, 5"},
		{"string slice", "{List}", []any{[]string{"a", "b"}}, "a, b"},
		{"array via reflection", "{List}", []any{[3]uint16{7, 8, 9}}, "7, 8, 9"},
		{"sequence interface", "{List}", []any{ring{items: []string{"r1", "r2"}}}, "r1, r2"},
		{"empty sequence", "[{List}]", []any{[]any{}}, "[]"},
		{"null", "{X}", []any{nil}, "(null)"},
		{"typed nil pointer", "{X}", []any{nilPtr}, "(null)"},
		{"nil map", "{X}", []any{nilMap}, "(null)"},
		{"missing argument", "{A} {B}", []any{"only"}, "only (null)"},
		{"extra arguments", "{A}", []any{"a", "b"}, "a"},
		{"string not exploded", "{S}", []any{"abc"}, "abc"},
		{"bytes as text", "{S}", []any{[]byte("raw")}, "raw"},
		{"stringer slice type", "{IP}", []any{net.IPv4(10, 0, 0, 1)}, "10.0.0.1"},
		{"error", "{Err}", []any{errors.New("boom")}, "boom"},
		{"bool", "{B}", []any{true}, "true"},
		{"float", "{F}", []any{1234.5}, "1234.5"},
		{"duration", "{D}", []any{1500 * time.Millisecond}, "1.5s"},
		{"right align", "[{A,5}]", []any{"ab"}, "[   ab]"},
		{"left align", "[{A,-5}]", []any{"ab"}, "[ab   ]"},
		{"align shorter than value", "[{A,2}]", []any{"abcd"}, "[abcd]"},
		{"align with format", "[{A,8:F1}]", []any{3.14159}, "[     3.1]"},
		{"formattable", "{M:C2}", []any{money{cents: 100}}, "money[C2]"},
		{"format ignored for strings", "{S:N2}", []any{"text"}, "text"},
		{"named numeric types", "{A:C2} {B:D5} {C:N2}", []any{amount(1234.5), count(42), 1234.5}, "¤1,234.50 00042 1,234.50"},
		{"named float natural", "{A}", []any{amount(1e300)}, "1E+300"},
		{"large float", "{F}", []any{1e300}, "1E+300"},
		{"small float", "{F}", []any{1e-7}, "1E-07"},
		{"float below exponent threshold", "{F}", []any{123456789012345.0}, "123456789012345"},
		{"large float round trip", "{F:R}", []any{-2.5e20}, "-2.5E+20"},
		{"format ends at first close brace", "{A:x}}y}", []any{"v"}, "v}y}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := msgtemplate.Compile(tt.raw).Render(tt.args...)
			if got != tt.want {
				t.Fatalf("Render(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRenderFormatSpecifierMatchesFormatValue(t *testing.T) {
	tmpl := msgtemplate.Compile("Value: {Amount:C2}")
	if tmpl.Name(0) != "Amount" {
		t.Fatalf("expected placeholder Amount, got %q", tmpl.Name(0))
	}
	want := "Value: " + msgtemplate.FormatValue(1234.5, "C2")
	if got := tmpl.Render(1234.5); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if want != "Value: ¤1,234.50" {
		t.Fatalf("unexpected invariant currency rendering %q", want)
	}
}

func TestAppendRender(t *testing.T) {
	tmpl := msgtemplate.Compile("{A}-{B}")
	buf := []byte("prefix:")
	buf = tmpl.AppendRender(buf, 1, 2)
	if string(buf) != "prefix:1-2" {
		t.Fatalf("unexpected append result %q", buf)
	}
	literal := msgtemplate.Compile("}}x{{")
	if got := string(literal.AppendRender(nil)); got != "}x{" {
		t.Fatalf("unexpected literal append %q", got)
	}
}

func TestFormatArgument(t *testing.T) {
	if got := msgtemplate.FormatArgument(nil); got != msgtemplate.NullValue {
		t.Fatalf("nil should become %q, got %#v", msgtemplate.NullValue, got)
	}
	if got := msgtemplate.FormatArgument(42); got != 42 {
		t.Fatalf("scalars should pass through unchanged, got %#v", got)
	}
	if got := msgtemplate.FormatArgument([]error{errors.New("a"), nil}); got != "a, (null)" {
		t.Fatalf("unexpected error slice rendering %#v", got)
	}
	if got := msgtemplate.FormatArgument([]float64{1.5, 2}); got != "1.5, 2" {
		t.Fatalf("unexpected float slice rendering %#v", got)
	}
}

func TestAppendRenderHighlighted(t *testing.T) {
	tmpl := msgtemplate.Compile("{{User}} {Name} has {Count:N0} items")
	got := string(tmpl.AppendRenderHighlighted(nil, "<", ">", "alice", 1200))
	if got != "{User} <alice> has <1,200> items" {
		t.Fatalf("unexpected highlighted rendering %q", got)
	}
	plain := msgtemplate.Compile("no {{values}}")
	if got := string(plain.AppendRenderHighlighted(nil, "<", ">")); got != "no {values}" {
		t.Fatalf("unexpected literal rendering %q", got)
	}
}
