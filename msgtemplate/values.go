package msgtemplate

import (
	"fmt"
	"iter"
)

// Field is one name/value pair of a LogValues view.
type Field struct {
	Name  string
	Value any
}

// LogValues pairs a template's placeholder names with the arguments of a
// single log call. The final entry is always OriginalFormatKey mapped to the
// raw template. Values are the arguments as supplied, not their rendered form.
type LogValues struct {
	tmpl *Template
	args []any
}

// Len returns the number of entries, placeholders plus the trailing
// OriginalFormatKey entry.
func (v LogValues) Len() int {
	return len(v.tmpl.names) + 1
}

// At returns entry i. It panics when i is outside [0, Len()).
func (v LogValues) At(i int) Field {
	names := v.tmpl.names
	switch {
	case i >= 0 && i < len(names):
		var value any
		if i < len(v.args) {
			value = v.args[i]
		}
		return Field{Name: names[i], Value: value}
	case i == len(names):
		return Field{Name: OriginalFormatKey, Value: v.tmpl.raw}
	default:
		panic(fmt.Errorf("msgtemplate: index %d out of range [0,%d)", i, len(names)+1))
	}
}

// All yields every entry in order.
func (v LogValues) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i := range v.Len() {
			f := v.At(i)
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Args returns the arguments that bind to placeholders. Extra arguments
// beyond the template's placeholders are excluded.
func (v LogValues) Args() []any {
	if len(v.args) > len(v.tmpl.names) {
		return v.args[:len(v.tmpl.names)]
	}
	return v.args
}

// String renders the template with the view's arguments.
func (v LogValues) String() string {
	return v.tmpl.Render(v.args...)
}
