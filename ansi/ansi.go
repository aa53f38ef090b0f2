// Package ansi provides the ANSI escape sequences and palettes used by the
// colourised console logger. A Palette is selected per logger through
// tmplog.Options.Palette; nothing in this package is mutable at runtime.
package ansi

// Reset clears all terminal styling; the remaining constants are the common
// colour sequences the built-in palettes are assembled from.
const (
	Reset         = "\x1b[0m"
	Bold          = "\x1b[1m"
	Faint         = "\x1b[90m"
	Red           = "\x1b[31m"
	Green         = "\x1b[32m"
	Yellow        = "\x1b[33m"
	Blue          = "\x1b[34m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	Gray          = "\x1b[37m"
	BrightRed     = "\x1b[1;31m"
	BrightGreen   = "\x1b[1;32m"
	BrightYellow  = "\x1b[1;33m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
	BrightCyan    = "\x1b[1;36m"
	BrightWhite   = "\x1b[1;37m"
)

// Palette maps each part of a console line to an escape sequence. An empty
// field leaves that part uncoloured.
type Palette struct {
	Key       string
	String    string
	Num       string
	Bool      string
	Nil       string
	Trace     string
	Debug     string
	Info      string
	Warn      string
	Error     string
	Fatal     string
	Panic     string
	NoLevel   string
	Timestamp string
	Message   string
	// Placeholder colours the argument values substituted into a rendered
	// message template.
	Placeholder string
}

// Wrap returns s surrounded by color and Reset, or s unchanged when color is
// empty.
func Wrap(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + Reset
}

// Merge returns p with every empty field filled from fallback.
func (p Palette) Merge(fallback Palette) Palette {
	return Palette{
		Key:         f(p.Key, fallback.Key),
		String:      f(p.String, fallback.String),
		Num:         f(p.Num, fallback.Num),
		Bool:        f(p.Bool, fallback.Bool),
		Nil:         f(p.Nil, fallback.Nil),
		Trace:       f(p.Trace, fallback.Trace),
		Debug:       f(p.Debug, fallback.Debug),
		Info:        f(p.Info, fallback.Info),
		Warn:        f(p.Warn, fallback.Warn),
		Error:       f(p.Error, fallback.Error),
		Fatal:       f(p.Fatal, fallback.Fatal),
		Panic:       f(p.Panic, fallback.Panic),
		NoLevel:     f(p.NoLevel, fallback.NoLevel),
		Timestamp:   f(p.Timestamp, fallback.Timestamp),
		Message:     f(p.Message, fallback.Message),
		Placeholder: f(p.Placeholder, fallback.Placeholder),
	}
}

func f(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
