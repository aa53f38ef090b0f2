package ansi

import (
	"slices"
	"testing"
)

func TestPaletteByName(t *testing.T) {
	tests := []struct {
		name string
		want *Palette
	}{
		{"", &PaletteDefault},
		{"default", &PaletteDefault},
		{"  NORD ", &PaletteNord},
		{"palette-nord", &PaletteNord},
		{"Synthwave_84", &PaletteSynthwave84},
		{"synthwave84", &PaletteSynthwave84},
		{"mono", &PaletteMonochrome},
		{"does-not-exist", &PaletteDefault},
	}
	for _, tt := range tests {
		if got := PaletteByName(tt.name); got != tt.want {
			t.Fatalf("PaletteByName(%q) returned the wrong palette", tt.name)
		}
	}
}

func TestAvailablePaletteNamesSorted(t *testing.T) {
	names := AvailablePaletteNames()
	if !slices.IsSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "default") || len(names) != len(namedPalettes) {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestMergeFillsEmptyFields(t *testing.T) {
	merged := Palette{Key: "KEY"}.Merge(PaletteDefault)
	if merged.Key != "KEY" {
		t.Fatalf("explicit field overwritten: %q", merged.Key)
	}
	if merged.Placeholder != PaletteDefault.Placeholder || merged.Info != PaletteDefault.Info {
		t.Fatalf("empty fields not filled from fallback: %+v", merged)
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap("", "plain"); got != "plain" {
		t.Fatalf("expected plain text, got %q", got)
	}
	if got := Wrap(Red, "x"); got != Red+"x"+Reset {
		t.Fatalf("unexpected wrapped text %q", got)
	}
}
