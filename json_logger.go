package tmplog

import "pkt.systems/tmplog/msgtemplate"

type jsonLogger struct {
	base        loggerBase
	tsKeyData   []byte
	lvlKeyData  []byte
	msgKeyData  []byte
	logLevelKey []byte
	basePayload []byte
	floats      NonFiniteFloatPolicy
	hint        lineHint
}

func newJSONLogger(cfg coreConfig, opts Options) *jsonLogger {
	tsKey := "ts"
	lvlKey := "lvl"
	msgKey := "msg"
	if opts.VerboseFields {
		tsKey = "time"
		lvlKey = "level"
		msgKey = "message"
	}
	logger := &jsonLogger{
		base:        newLoggerBase(cfg, nil),
		tsKeyData:   appendJSONKeyData(nil, tsKey, false),
		lvlKeyData:  appendJSONKeyData(nil, lvlKey, true),
		msgKeyData:  appendJSONKeyData(nil, msgKey, true),
		logLevelKey: appendJSONKeyData(nil, "loglevel", true),
		floats:      normalizeNonFiniteFloatPolicy(opts.NonFiniteFloatPolicy),
		hint:        newLineHint(0),
	}
	logger.rebuildBasePayload()
	return logger
}

func (l *jsonLogger) Trace(template string, args ...any) { l.log(TraceLevel, template, args) }
func (l *jsonLogger) Debug(template string, args ...any) { l.log(DebugLevel, template, args) }
func (l *jsonLogger) Info(template string, args ...any)  { l.log(InfoLevel, template, args) }
func (l *jsonLogger) Warn(template string, args ...any)  { l.log(WarnLevel, template, args) }
func (l *jsonLogger) Error(template string, args ...any) { l.log(ErrorLevel, template, args) }

func (l *jsonLogger) Fatal(template string, args ...any) {
	l.log(FatalLevel, template, args)
	exitProcess()
}

func (l *jsonLogger) Panic(template string, args ...any) {
	msg := l.log(PanicLevel, template, args)
	if msg == "" {
		tmpl, bound, _ := l.base.cfg.bind(template, args)
		msg = tmpl.Render(bound...)
	}
	panic(msg)
}

func (l *jsonLogger) Log(level Level, template string, args ...any) {
	l.log(level, template, args)
}

// log writes one entry and returns the rendered message, or "" when the
// level is filtered out.
func (l *jsonLogger) log(level Level, template string, args []any) string {
	if !l.base.cfg.shouldLog(level) {
		return ""
	}
	return l.write(level, l.base.cfg.templates.Compile(template), args)
}

// logLiteral writes msg verbatim without storing it in the template cache.
func (l *jsonLogger) logLiteral(level Level, msg string) {
	if !l.base.cfg.shouldLog(level) {
		return
	}
	l.write(level, msgtemplate.Compile(msgtemplate.Escape(msg)), nil)
}

func (l *jsonLogger) write(level Level, tmpl *msgtemplate.Template, args []any) string {
	bound, keyvals := splitArgs(tmpl, args)
	template := tmpl.Raw()
	values := tmpl.Values(bound...)
	msg := values.String()

	lw := l.hint.acquire(l.base.cfg.writer)
	lw.reserve(2 + len(l.basePayload) + len(msg) + len(template) + len(args)*16)
	lw.writeByte('{')
	first := true
	if l.base.cfg.includeTimestamp {
		l.writeKey(lw, &first, l.tsKeyData)
		writeJSONString(lw, l.base.cfg.timestamp())
	}
	l.writeKey(lw, &first, l.lvlKeyData)
	writeJSONString(lw, LevelString(level))
	if msg != "" {
		l.writeKey(lw, &first, l.msgKeyData)
		writeJSONString(lw, msg)
	}
	if len(l.basePayload) > 0 {
		l.writeKey(lw, &first, l.basePayload)
	}
	// The last entry of the view is the original format; it goes after the
	// call site key/values.
	for i := range values.Len() - 1 {
		f := values.At(i)
		l.writeField(lw, &first, f.Name, f.Value)
	}
	l.writeKeyvals(lw, &first, keyvals)
	if l.base.cfg.originalFormat && template != "" {
		f := values.At(values.Len() - 1)
		l.writeField(lw, &first, f.Name, f.Value)
	}
	if l.base.cfg.includeLogLevel {
		l.writeKey(lw, &first, l.logLevelKey)
		writeJSONString(lw, l.base.cfg.logLevelValue)
	}
	lw.writeByte('}')
	l.hint.release(lw)
	return msg
}

// writeKey appends pre-encoded key data that carries a leading comma,
// dropping the comma for the first member.
func (l *jsonLogger) writeKey(lw *lineWriter, first *bool, keyData []byte) {
	if *first {
		*first = false
		if len(keyData) > 0 && keyData[0] == ',' {
			keyData = keyData[1:]
		}
	}
	lw.writeBytes(keyData)
}

func (l *jsonLogger) writeField(lw *lineWriter, first *bool, key string, value any) {
	if key == "" {
		return
	}
	if *first {
		*first = false
	} else {
		lw.writeByte(',')
	}
	writeJSONKey(lw, key)
	writeJSONValue(lw, value, l.floats)
}

func (l *jsonLogger) writeKeyvals(lw *lineWriter, first *bool, keyvals []any) {
	pair := 0
	for i := 0; i < len(keyvals); {
		if i+1 < len(keyvals) {
			l.writeField(lw, first, keyFromValue(keyvals[i], pair), keyvals[i+1])
			i += 2
		} else {
			l.writeField(lw, first, argKeyName(pair), keyvals[i])
			i++
		}
		pair++
	}
}

func (l *jsonLogger) With(keyvals ...any) Logger {
	fields := collectFields(keyvals)
	if len(fields) == 0 {
		return l
	}
	clone := l.clone()
	clone.base.withFields(fields)
	clone.rebuildBasePayload()
	return clone
}

func (l *jsonLogger) WithLogLevel() Logger {
	if l.base.cfg.includeLogLevel {
		return l
	}
	clone := l.clone()
	clone.base.withLogLevelField()
	return clone
}

func (l *jsonLogger) LogLevel(level Level) Logger {
	clone := l.clone()
	clone.base.withMinLevel(level)
	return clone
}

func (l *jsonLogger) LogLevelFromEnv(key string) Logger {
	if level, ok := LevelFromEnv(key); ok {
		return l.LogLevel(level)
	}
	return l
}

// Close closes the output when the logger opened it itself.
func (l *jsonLogger) Close() error {
	return closeOutput(l.base.cfg.writer)
}

func (l *jsonLogger) clone() *jsonLogger {
	clone := *l
	clone.base = l.base.clone()
	clone.hint = newLineHint(l.hint.load())
	return &clone
}

// rebuildBasePayload pre-encodes the With fields as ",k:v,k:v".
func (l *jsonLogger) rebuildBasePayload() {
	if len(l.base.fields) == 0 {
		l.basePayload = nil
		return
	}
	lw := acquireLineWriter(nil)
	lw.autoFlush = false
	for _, f := range l.base.fields {
		if f.key == "" {
			continue
		}
		lw.buf = append(lw.buf, ',')
		writeJSONKey(lw, f.key)
		writeJSONValue(lw, f.value, l.floats)
	}
	l.basePayload = append([]byte(nil), lw.buf...)
	releaseLineWriter(lw)
}

var _ interface {
	Logger
	Close() error
} = (*jsonLogger)(nil)
