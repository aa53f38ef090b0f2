package ansi

import (
	"sort"
	"strings"
)

// PaletteDefault is the palette used when none is configured.
var PaletteDefault = Palette{
	Key:         Cyan,
	String:      BrightBlue,
	Num:         Magenta,
	Bool:        Yellow,
	Nil:         Faint,
	Trace:       Blue,
	Debug:       Green,
	Info:        BrightGreen,
	Warn:        BrightYellow,
	Error:       BrightRed,
	Fatal:       BrightRed,
	Panic:       BrightRed,
	NoLevel:     Faint,
	Timestamp:   Faint,
	Message:     Bold,
	Placeholder: BrightCyan,
}

// PaletteMonochrome only uses weight and dimming.
var PaletteMonochrome = Palette{
	Key:         Faint,
	Nil:         Faint,
	Info:        Bold,
	Warn:        Bold,
	Error:       Bold,
	Fatal:       Bold,
	Panic:       Bold,
	Timestamp:   Faint,
	Placeholder: Bold,
}

// PaletteNord uses 256-colour approximations of the Nord scheme.
var PaletteNord = Palette{
	Key:         "\x1b[38;5;110m",
	String:      "\x1b[38;5;151m",
	Num:         "\x1b[38;5;139m",
	Bool:        "\x1b[38;5;222m",
	Nil:         "\x1b[38;5;60m",
	Trace:       "\x1b[38;5;67m",
	Debug:       "\x1b[38;5;109m",
	Info:        "\x1b[1;38;5;150m",
	Warn:        "\x1b[1;38;5;222m",
	Error:       "\x1b[1;38;5;167m",
	Fatal:       "\x1b[1;38;5;167m",
	Panic:       "\x1b[1;38;5;167m",
	NoLevel:     "\x1b[38;5;60m",
	Timestamp:   "\x1b[38;5;60m",
	Message:     "\x1b[1;38;5;255m",
	Placeholder: "\x1b[38;5;116m",
}

// PaletteSynthwave84 is a loud neon scheme.
var PaletteSynthwave84 = Palette{
	Key:         "\x1b[38;5;213m",
	String:      "\x1b[38;5;87m",
	Num:         "\x1b[38;5;220m",
	Bool:        "\x1b[38;5;208m",
	Nil:         "\x1b[38;5;97m",
	Trace:       "\x1b[38;5;99m",
	Debug:       "\x1b[38;5;45m",
	Info:        "\x1b[1;38;5;49m",
	Warn:        "\x1b[1;38;5;220m",
	Error:       "\x1b[1;38;5;197m",
	Fatal:       "\x1b[1;38;5;197m",
	Panic:       "\x1b[1;38;5;197m",
	NoLevel:     "\x1b[38;5;97m",
	Timestamp:   "\x1b[38;5;97m",
	Message:     "\x1b[1;38;5;231m",
	Placeholder: "\x1b[38;5;201m",
}

var namedPalettes = map[string]*Palette{
	"default":      &PaletteDefault,
	"monochrome":   &PaletteMonochrome,
	"nord":         &PaletteNord,
	"synthwave-84": &PaletteSynthwave84,
}

var paletteAliases = map[string]string{
	"mono":        "monochrome",
	"synthwave84": "synthwave-84",
	"synthwave":   "synthwave-84",
}

// PaletteByName resolves a built-in palette by its canonical name.
// Names are case-insensitive and support compatibility aliases. Unknown names
// resolve to PaletteDefault.
func PaletteByName(name string) *Palette {
	normalized := normalizePaletteName(name)
	if normalized == "" {
		return &PaletteDefault
	}
	if canonical, ok := paletteAliases[normalized]; ok {
		normalized = canonical
	}
	if palette, ok := namedPalettes[normalized]; ok && palette != nil {
		return palette
	}
	return &PaletteDefault
}

// AvailablePaletteNames returns canonical built-in palette names in sorted order.
func AvailablePaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for name := range namedPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizePaletteName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.Trim(s, "-")
	return strings.TrimPrefix(s, "palette-")
}
