package tmplog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"pkt.systems/tmplog/msgtemplate"
)

// exitProcess terminates the process after a Fatal entry. Tests swap it out.
var exitProcess = func() { os.Exit(1) }

type field struct {
	key   string
	value any
}

func collectFields(keyvals []any) []field {
	if len(keyvals) == 0 {
		return nil
	}
	fields := make([]field, 0, (len(keyvals)+1)/2)
	pair := 0
	for i := 0; i < len(keyvals); {
		if i+1 < len(keyvals) {
			fields = append(fields, field{key: keyFromValue(keyvals[i], pair), value: keyvals[i+1]})
			i += 2
			pair++
			continue
		}
		fields = append(fields, field{key: argKeyName(pair), value: keyvals[i]})
		i++
		pair++
	}
	return fields
}

// argKeyName names a value that arrived without a key.
func argKeyName(pair int) string {
	return "arg" + strconv.Itoa(pair)
}

func keyFromValue(v any, pair int) string {
	switch k := v.(type) {
	case nil:
		return argKeyName(pair)
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	case error:
		return k.Error()
	default:
		return fmt.Sprint(v)
	}
}

func cloneFields(src []field) []field {
	if len(src) == 0 {
		return nil
	}
	dst := make([]field, len(src))
	copy(dst, src)
	return dst
}

type coreConfig struct {
	writer            io.Writer
	minLevel          Level
	forcedLevel       *Level
	includeLogLevel   bool
	logLevelValue     string
	includeTimestamp  bool
	timeLayout        string
	useUTC            bool
	templates         *msgtemplate.Cache
	originalFormat    bool
	placeholderFields bool
}

func (c coreConfig) clone() coreConfig {
	clone := c
	if c.forcedLevel != nil {
		value := *c.forcedLevel
		clone.forcedLevel = &value
	}
	return clone
}

func (c coreConfig) shouldLog(level Level) bool {
	if c.writer == nil {
		return false
	}
	effective := level
	if c.forcedLevel != nil {
		switch *c.forcedLevel {
		case Disabled:
			return false
		case NoLevel:
			effective = InfoLevel
		default:
			effective = *c.forcedLevel
		}
	}
	if effective == Disabled {
		return false
	}
	return effective >= c.minLevel
}

func (c coreConfig) currentLevel() Level {
	if c.forcedLevel != nil {
		return *c.forcedLevel
	}
	return c.minLevel
}

func (c coreConfig) timestamp() string {
	if !c.includeTimestamp {
		return ""
	}
	now := time.Now()
	if c.useUTC {
		now = now.UTC()
	}
	return now.Format(c.timeLayout)
}

// bind compiles template and splits args into the values bound to its
// placeholders and the trailing key/value pairs.
func (c coreConfig) bind(template string, args []any) (*msgtemplate.Template, []any, []any) {
	tmpl := c.templates.Compile(template)
	bound, keyvals := splitArgs(tmpl, args)
	return tmpl, bound, keyvals
}

func splitArgs(tmpl *msgtemplate.Template, args []any) ([]any, []any) {
	n := min(tmpl.NumNames(), len(args))
	return args[:n], args[n:]
}

// literalLogger is implemented by loggers that can write a message verbatim
// without storing it in the template cache.
type literalLogger interface {
	logLiteral(level Level, msg string)
}

// logLiteral writes msg through logger without treating it as a template.
func logLiteral(logger Logger, level Level, msg string) {
	if ll, ok := logger.(literalLogger); ok {
		ll.logLiteral(level, msg)
		return
	}
	logger.Log(level, msgtemplate.Escape(msg))
}

type loggerBase struct {
	cfg    coreConfig
	fields []field
}

func newLoggerBase(cfg coreConfig, fields []field) loggerBase {
	return loggerBase{cfg: cfg, fields: fields}
}

func (b loggerBase) clone() loggerBase {
	return loggerBase{
		cfg:    b.cfg.clone(),
		fields: cloneFields(b.fields),
	}
}

func (b *loggerBase) withFields(additional []field) {
	if len(additional) == 0 {
		return
	}
	if len(b.fields) == 0 {
		b.fields = cloneFields(additional)
		return
	}
	fields := make([]field, 0, len(b.fields)+len(additional))
	fields = append(fields, b.fields...)
	fields = append(fields, additional...)
	b.fields = fields
}

func (b *loggerBase) withLogLevelField() {
	if b.cfg.includeLogLevel {
		return
	}
	b.cfg.includeLogLevel = true
	b.cfg.logLevelValue = LevelString(b.cfg.currentLevel())
}

func (b *loggerBase) withMinLevel(level Level) {
	if level == NoLevel {
		b.withForcedLevel(level)
		return
	}
	b.cfg.minLevel = level
	b.cfg.forcedLevel = nil
	b.cfg.logLevelValue = LevelString(b.cfg.currentLevel())
}

func (b *loggerBase) withForcedLevel(level Level) {
	value := level
	b.cfg.forcedLevel = &value
	b.cfg.logLevelValue = LevelString(b.cfg.currentLevel())
}
