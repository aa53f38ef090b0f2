package tmplog

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"pkt.systems/tmplog/ansi"
	"pkt.systems/tmplog/msgtemplate"
)

// Base defines the smallest set of convenience methods that library authors can
// require when they want consumers to plug in their own logger.
//
// The first argument of every method is a message template. Arguments bind
// positionally to its placeholders; arguments beyond the placeholders are
// key/value pairs.
type Base interface {
	// Trace logs template at TraceLevel (below DebugLevel).
	Trace(template string, args ...any)
	// Debug logs template at DebugLevel.
	Debug(template string, args ...any)
	// Info logs template at InfoLevel.
	Info(template string, args ...any)
	// Warn logs template at WarnLevel.
	Warn(template string, args ...any)
	// Error logs template at ErrorLevel.
	Error(template string, args ...any)
}

// Logger is the main interface of tmplog.
type Logger interface {
	Base
	// Fatal logs template at FatalLevel and terminates the process.
	Fatal(template string, args ...any)
	// Panic logs template at PanicLevel and panics with the rendered message.
	Panic(template string, args ...any)
	// Log emits template at the supplied level.
	Log(level Level, template string, args ...any)

	// With returns a logger that includes the supplied key/value pairs on every
	// subsequent log entry. The receiver remains untouched.
	With(keyvals ...any) Logger

	// WithLogLevel returns a logger that carries a `loglevel` field describing
	// the logger's effective severity.
	WithLogLevel() Logger

	// LogLevel returns a logger derived from the receiver whose minimum level is
	// set to level. The receiver itself is not modified.
	LogLevel(Level) Logger

	// LogLevelFromEnv configures the logger's level using the value of key in the
	// environment. Missing or invalid values leave the logger unchanged.
	LogLevelFromEnv(key string) Logger
}

// Mode controls how entries are rendered.
type Mode int

const (
	// ModeConsole emits human readable console lines (colour aware).
	ModeConsole Mode = iota
	// ModeStructured emits compact JSON suitable for ingestion.
	ModeStructured
)

// Level defines log levels.
type Level int8

const (
	// DebugLevel defines debug log level.
	DebugLevel Level = iota
	// InfoLevel defines info log level.
	InfoLevel
	// WarnLevel defines warn log level.
	WarnLevel
	// ErrorLevel defines error log level.
	ErrorLevel
	// FatalLevel defines fatal log level.
	FatalLevel
	// PanicLevel defines panic log level.
	PanicLevel
	// NoLevel defines an absent log level.
	NoLevel
	// Disabled disables the logger.
	Disabled
	// TraceLevel defines trace log level.
	TraceLevel Level = -1
)

// ParseLevel converts a textual level into a Level value. It accepts values
// such as "trace", "debug", "info", "warn", "warning", "error",
// "fatal", "panic", "no", "nolevel", "disabled", and "off" (case
// insensitive).
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info", "information":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal", "critical":
		return FatalLevel, true
	case "panic":
		return PanicLevel, true
	case "no", "nolevel", "none":
		return NoLevel, true
	case "disabled", "disable", "off":
		return Disabled, true
	default:
		return InfoLevel, false
	}
}

// LevelString returns the canonical string representation of a Level.
func LevelString(level Level) string {
	switch level {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	case PanicLevel:
		return "panic"
	case NoLevel:
		return "nolevel"
	case Disabled:
		return "disabled"
	default:
		return "info"
	}
}

// LevelFromEnv looks up key in the environment and parses it into a Level.
func LevelFromEnv(key string) (Level, bool) {
	if key == "" {
		return InfoLevel, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return InfoLevel, false
	}
	return ParseLevel(value)
}

// DTGTimeFormat is the default Date Time Group format (DDHHMM) for the console
// logger.
var DTGTimeFormat = "021504"

// Options controls how the logger formats and filters output.
type Options struct {
	// Mode selects console (default) or structured JSON rendering.
	Mode Mode

	// TimeFormat overrides the timestamp layout. When empty, DTGTimeFormat is
	// used for console output and time.RFC3339 for JSON.
	TimeFormat string

	// DisableTimestamp drops the timestamp entirely.
	DisableTimestamp bool

	// NoColor forces colour escape codes off regardless of terminal detection.
	NoColor bool

	// ForceColor bypasses terminal detection and emits colour even when the
	// destination is not a TTY.
	ForceColor bool

	// Palette overrides the console palette. Empty fields fall back to
	// ansi.PaletteDefault.
	Palette *ansi.Palette

	// MinLevel sets the minimum level the logger will emit. Defaults to Debug.
	MinLevel Level

	// VerboseFields switches JSON keys from ts/lvl/msg to time/level/message.
	VerboseFields bool

	// UTC forces timestamps to be rendered in UTC.
	UTC bool

	// Templates is the cache message templates are compiled through. When
	// nil, msgtemplate.Default() is used.
	Templates *msgtemplate.Cache

	// OmitOriginalFormat drops the {OriginalFormat} field from JSON entries.
	OmitOriginalFormat bool

	// NonFiniteFloatPolicy selects how JSON entries encode NaN and infinities.
	NonFiniteFloatPolicy NonFiniteFloatPolicy

	// ConsolePlaceholderFields repeats placeholder values as key=value pairs
	// after the rendered console message.
	ConsolePlaceholderFields bool
}

// New constructs a logger configured for console output.
func New(w io.Writer) Logger {
	return NewWithOptions(w, Options{Mode: ModeConsole})
}

// NewStructured returns a logger in structured JSON mode.
func NewStructured(w io.Writer) Logger {
	return NewWithOptions(w, Options{Mode: ModeStructured})
}

// NewWithOptions builds a logger with explicit settings.
func NewWithOptions(w io.Writer, opts Options) Logger {
	return buildAdapter(w, opts)
}

// NewWithPalette builds a logger in mode using palette for colourised output.
func NewWithPalette(w io.Writer, mode Mode, palette *ansi.Palette) Logger {
	return NewWithOptions(w, Options{Mode: mode, Palette: palette})
}

// NewBaseLogger returns a Base implementation writing JSON to w.
func NewBaseLogger(w io.Writer) Base {
	return buildAdapter(w, Options{Mode: ModeStructured})
}

type loggerContextKey struct{}

// ContextWithLogger returns a child context carrying logger.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// ContextWithBaseLogger returns a child context carrying a Base logger.
func ContextWithBaseLogger(ctx context.Context, logger Base) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext extracts a Logger from ctx or returns a no-op logger.
func LoggerFromContext(ctx context.Context) Logger {
	if ctx == nil {
		return noopLogger{}
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(Logger); ok && logger != nil {
		return logger
	}
	return noopLogger{}
}

// BaseLoggerFromContext extracts a Base logger from ctx or returns a no-op
// logger.
func BaseLoggerFromContext(ctx context.Context) Base {
	if ctx == nil {
		return noopLogger{}
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(Base); ok && logger != nil {
		return logger
	}
	return noopLogger{}
}

// Ctx is shorthand for LoggerFromContext.
func Ctx(ctx context.Context) Logger {
	return LoggerFromContext(ctx)
}

// BCtx is shorthand for BaseLoggerFromContext.
func BCtx(ctx context.Context) Base {
	return BaseLoggerFromContext(ctx)
}

// LogLogger wraps a Logger into a stdlib *log.Logger. Each written line is
// logged as a literal message; braces in it are not placeholders.
func LogLogger(logger Logger) *log.Logger {
	if logger == nil {
		logger = noopLogger{}
	}
	return log.New(loggerWriter{logger: logger}, "", 0)
}

// LogLoggerWithLevel is LogLogger with every line pinned to level.
func LogLoggerWithLevel(logger Logger, level Level) *log.Logger {
	if logger == nil {
		logger = noopLogger{}
	}
	return log.New(levelPinnedWriter{logger: logger, level: level}, "", 0)
}

func buildAdapter(w io.Writer, opts Options) Logger {
	if w == nil {
		w = io.Discard
	}
	mode := opts.Mode
	if mode != ModeStructured {
		mode = ModeConsole
	}
	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		if mode == ModeConsole {
			timeFormat = DTGTimeFormat
		} else {
			timeFormat = time.RFC3339
		}
	}
	templates := opts.Templates
	if templates == nil {
		templates = msgtemplate.Default()
	}

	cfg := coreConfig{
		writer:            w,
		minLevel:          opts.MinLevel,
		includeTimestamp:  !opts.DisableTimestamp,
		timeLayout:        timeFormat,
		useUTC:            opts.UTC,
		logLevelValue:     LevelString(opts.MinLevel),
		templates:         templates,
		originalFormat:    !opts.OmitOriginalFormat,
		placeholderFields: opts.ConsolePlaceholderFields,
	}

	if mode == ModeStructured {
		return newJSONLogger(cfg, opts)
	}
	colorEnabled := !opts.NoColor && (opts.ForceColor || isTerminal(w))
	var palette *ansi.Palette
	if colorEnabled {
		palette = resolvePaletteOption(opts.Palette)
	}
	return newConsoleLogger(cfg, palette)
}

func resolvePaletteOption(palette *ansi.Palette) *ansi.Palette {
	if palette != nil {
		return palette
	}
	return &ansi.PaletteDefault
}

func classifyLineLevel(line string) (Level, string) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "[") {
		if end := strings.IndexRune(trimmed, ']'); end > 1 {
			candidate := trimmed[1:end]
			if lvl, ok := ParseLevel(candidate); ok {
				msg := strings.TrimSpace(trimmed[end+1:])
				return lvl, msg
			}
		}
	}
	lowered := strings.ToLower(trimmed)
	trimTail := func(prefixLen int) string {
		tail := strings.TrimSpace(trimmed[prefixLen:])
		tail = strings.TrimLeft(tail, ":- ")
		return strings.TrimSpace(tail)
	}
	for _, candidate := range []struct {
		prefix string
		level  Level
	}{
		{"trace", TraceLevel},
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"panic", PanicLevel},
	} {
		if strings.HasPrefix(lowered, candidate.prefix) {
			return candidate.level, trimTail(len(candidate.prefix))
		}
	}
	return InfoLevel, trimmed
}

type loggerWriter struct {
	logger Logger
}

func (w loggerWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for line := range bytes.SplitSeq(p, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		level, msg := classifyLineLevel(trimmed)
		logLiteral(w.logger, level, msg)
	}
	return len(p), nil
}

type levelPinnedWriter struct {
	logger Logger
	level  Level
}

func (w levelPinnedWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for line := range bytes.SplitSeq(p, []byte{'\n'}) {
		line = bytes.TrimSpace(bytes.TrimSuffix(line, []byte{'\r'}))
		if len(line) == 0 {
			continue
		}
		logLiteral(w.logger, w.level, string(line))
	}
	return len(p), nil
}
