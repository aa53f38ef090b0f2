package tmplog

import (
	"strconv"
	"time"

	"pkt.systems/tmplog/ansi"
	"pkt.systems/tmplog/msgtemplate"
)

// consoleLogger writes `TS LVL message key=value ...` lines. A nil palette
// disables colour.
type consoleLogger struct {
	base      loggerBase
	palette   *ansi.Palette
	baseBytes []byte
	hint      lineHint
}

func newConsoleLogger(cfg coreConfig, palette *ansi.Palette) *consoleLogger {
	logger := &consoleLogger{
		base:    newLoggerBase(cfg, nil),
		palette: palette,
		hint:    newLineHint(0),
	}
	logger.rebuildBaseBytes()
	return logger
}

func (l *consoleLogger) Trace(template string, args ...any) { l.log(TraceLevel, template, args) }
func (l *consoleLogger) Debug(template string, args ...any) { l.log(DebugLevel, template, args) }
func (l *consoleLogger) Info(template string, args ...any)  { l.log(InfoLevel, template, args) }
func (l *consoleLogger) Warn(template string, args ...any)  { l.log(WarnLevel, template, args) }
func (l *consoleLogger) Error(template string, args ...any) { l.log(ErrorLevel, template, args) }

func (l *consoleLogger) Fatal(template string, args ...any) {
	l.log(FatalLevel, template, args)
	exitProcess()
}

func (l *consoleLogger) Panic(template string, args ...any) {
	l.log(PanicLevel, template, args)
	tmpl, bound, _ := l.base.cfg.bind(template, args)
	panic(tmpl.Render(bound...))
}

func (l *consoleLogger) Log(level Level, template string, args ...any) {
	l.log(level, template, args)
}

func (l *consoleLogger) log(level Level, template string, args []any) {
	if !l.base.cfg.shouldLog(level) {
		return
	}
	l.write(level, l.base.cfg.templates.Compile(template), args)
}

// logLiteral writes msg verbatim without storing it in the template cache.
func (l *consoleLogger) logLiteral(level Level, msg string) {
	if !l.base.cfg.shouldLog(level) {
		return
	}
	l.write(level, msgtemplate.Compile(msgtemplate.Escape(msg)), nil)
}

func (l *consoleLogger) write(level Level, tmpl *msgtemplate.Template, args []any) {
	bound, keyvals := splitArgs(tmpl, args)
	template := tmpl.Raw()
	p := l.palette

	lw := l.hint.acquire(l.base.cfg.writer)
	lw.reserve(len(template) + len(l.baseBytes) + len(args)*16 + 16)
	if l.base.cfg.includeTimestamp {
		lw.writeColored(l.timestampColor(), l.base.cfg.timestamp())
		lw.writeByte(' ')
	}
	lw.writeColored(levelColor(p, level), consoleLevelLabel(level))
	if template != "" {
		lw.writeByte(' ')
		l.writeMessage(lw, tmpl, bound)
	}
	lw.writeBytes(l.baseBytes)
	if l.base.cfg.placeholderFields {
		for i := range tmpl.NumNames() {
			var value any
			if i < len(bound) {
				value = bound[i]
			}
			lw.buf = appendConsoleField(lw.buf, p, tmpl.Name(i), value)
		}
	}
	pair := 0
	for i := 0; i < len(keyvals); {
		if i+1 < len(keyvals) {
			lw.buf = appendConsoleField(lw.buf, p, keyFromValue(keyvals[i], pair), keyvals[i+1])
			i += 2
		} else {
			lw.buf = appendConsoleField(lw.buf, p, argKeyName(pair), keyvals[i])
			i++
		}
		pair++
	}
	if l.base.cfg.includeLogLevel {
		lw.buf = appendConsoleField(lw.buf, p, "loglevel", l.base.cfg.logLevelValue)
	}
	l.hint.release(lw)
}

// writeMessage renders the template. With colour on, substituted values are
// highlighted unless the message needs control characters escaped, in which
// case it is written uniformly in the message colour.
func (l *consoleLogger) writeMessage(lw *lineWriter, tmpl *msgtemplate.Template, args []any) {
	start := len(lw.buf)
	lw.buf = tmpl.AppendRender(lw.buf, args...)
	if !hasConsoleControl(lw.buf[start:]) {
		if l.palette == nil || l.palette.Message == "" && l.palette.Placeholder == "" {
			return
		}
		lw.buf = lw.buf[:start]
		msgColor := l.palette.Message
		before := l.palette.Placeholder
		after := ""
		if before != "" {
			after = ansi.Reset + msgColor
		}
		lw.buf = append(lw.buf, msgColor...)
		lw.buf = tmpl.AppendRenderHighlighted(lw.buf, before, after, args...)
		if msgColor != "" || before != "" {
			lw.buf = append(lw.buf, ansi.Reset...)
		}
		return
	}
	msg := string(lw.buf[start:])
	lw.buf = lw.buf[:start]
	msgColor := ""
	if l.palette != nil {
		msgColor = l.palette.Message
	}
	lw.buf = append(lw.buf, msgColor...)
	lw.buf = appendConsoleMessage(lw.buf, msg)
	if msgColor != "" {
		lw.buf = append(lw.buf, ansi.Reset...)
	}
}

func (l *consoleLogger) timestampColor() string {
	if l.palette == nil {
		return ""
	}
	return l.palette.Timestamp
}

func (l *consoleLogger) With(keyvals ...any) Logger {
	fields := collectFields(keyvals)
	if len(fields) == 0 {
		return l
	}
	clone := l.clone()
	clone.base.withFields(fields)
	clone.rebuildBaseBytes()
	return clone
}

func (l *consoleLogger) WithLogLevel() Logger {
	if l.base.cfg.includeLogLevel {
		return l
	}
	clone := l.clone()
	clone.base.withLogLevelField()
	return clone
}

func (l *consoleLogger) LogLevel(level Level) Logger {
	clone := l.clone()
	clone.base.withMinLevel(level)
	return clone
}

func (l *consoleLogger) LogLevelFromEnv(key string) Logger {
	if level, ok := LevelFromEnv(key); ok {
		return l.LogLevel(level)
	}
	return l
}

// Close closes the output when the logger opened it itself.
func (l *consoleLogger) Close() error {
	return closeOutput(l.base.cfg.writer)
}

func (l *consoleLogger) clone() *consoleLogger {
	clone := *l
	clone.base = l.base.clone()
	clone.hint = newLineHint(l.hint.load())
	return &clone
}

func (l *consoleLogger) rebuildBaseBytes() {
	var buf []byte
	for _, f := range l.base.fields {
		buf = appendConsoleField(buf, l.palette, f.key, f.value)
	}
	l.baseBytes = buf
}

func consoleLevelLabel(level Level) string {
	switch level {
	case TraceLevel:
		return "TRC"
	case DebugLevel:
		return "DBG"
	case InfoLevel:
		return "INF"
	case WarnLevel:
		return "WRN"
	case ErrorLevel:
		return "ERR"
	case FatalLevel:
		return "FTL"
	case PanicLevel:
		return "PNC"
	case NoLevel:
		return "---"
	default:
		return "INF"
	}
}

func levelColor(p *ansi.Palette, level Level) string {
	if p == nil {
		return ""
	}
	switch level {
	case TraceLevel:
		return p.Trace
	case DebugLevel:
		return p.Debug
	case InfoLevel:
		return p.Info
	case WarnLevel:
		return p.Warn
	case ErrorLevel:
		return p.Error
	case FatalLevel:
		return p.Fatal
	case PanicLevel:
		return p.Panic
	case NoLevel:
		return p.NoLevel
	default:
		return p.Info
	}
}

func appendConsoleField(dst []byte, p *ansi.Palette, key string, value any) []byte {
	if key == "" {
		return dst
	}
	dst = append(dst, ' ')
	if p != nil && p.Key != "" {
		dst = append(dst, p.Key...)
		dst = append(dst, key...)
		dst = append(dst, '=')
		dst = append(dst, ansi.Reset...)
	} else {
		dst = append(dst, key...)
		dst = append(dst, '=')
	}
	return appendConsoleValue(dst, p, value)
}

// appendConsoleValue writes a value as a single token, quoting it when it
// contains spaces, quotes or control characters.
func appendConsoleValue(dst []byte, p *ansi.Palette, value any) []byte {
	color := consoleValueColor(p, value)
	dst = append(dst, color...)
	switch v := value.(type) {
	case nil:
		dst = append(dst, "nil"...)
	case string:
		dst = appendConsoleString(dst, v)
	case bool:
		dst = strconv.AppendBool(dst, v)
	case int:
		dst = strconv.AppendInt(dst, int64(v), 10)
	case int8:
		dst = strconv.AppendInt(dst, int64(v), 10)
	case int16:
		dst = strconv.AppendInt(dst, int64(v), 10)
	case int32:
		dst = strconv.AppendInt(dst, int64(v), 10)
	case int64:
		dst = strconv.AppendInt(dst, v, 10)
	case uint:
		dst = strconv.AppendUint(dst, uint64(v), 10)
	case uint8:
		dst = strconv.AppendUint(dst, uint64(v), 10)
	case uint16:
		dst = strconv.AppendUint(dst, uint64(v), 10)
	case uint32:
		dst = strconv.AppendUint(dst, uint64(v), 10)
	case uint64:
		dst = strconv.AppendUint(dst, v, 10)
	case float32:
		dst = strconv.AppendFloat(dst, float64(v), 'f', -1, 32)
	case float64:
		dst = strconv.AppendFloat(dst, v, 'f', -1, 64)
	case time.Time:
		dst = appendConsoleString(dst, v.Format(time.RFC3339Nano))
	case error:
		if isNilPointer(v) {
			dst = append(dst, "nil"...)
		} else {
			dst = appendConsoleString(dst, v.Error())
		}
	default:
		dst = appendConsoleString(dst, msgtemplate.FormatValue(msgtemplate.FormatArgument(v), ""))
	}
	if color != "" {
		dst = append(dst, ansi.Reset...)
	}
	return dst
}

func consoleValueColor(p *ansi.Palette, value any) string {
	if p == nil {
		return ""
	}
	switch value.(type) {
	case nil:
		return p.Nil
	case bool:
		return p.Bool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return p.Num
	case error:
		return p.Error
	default:
		return p.String
	}
}

func appendConsoleString(dst []byte, s string) []byte {
	if needsQuote(s) {
		return appendConsoleQuoted(dst, s)
	}
	return append(dst, s...)
}

var _ interface {
	Logger
	Close() error
} = (*consoleLogger)(nil)
