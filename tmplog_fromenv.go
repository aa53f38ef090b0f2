package tmplog

import (
	"io"
	"os"
	"strconv"
	"strings"

	"pkt.systems/tmplog/ansi"
	"pkt.systems/tmplog/msgtemplate"
)

// LoggerFromEnvOption customizes LoggerFromEnv behavior.
type LoggerFromEnvOption func(*loggerFromEnvConfig)

type loggerFromEnvConfig struct {
	prefix  string
	options Options
	writer  io.Writer
}

// WithEnvPrefix overrides the environment variable prefix used by LoggerFromEnv.
func WithEnvPrefix(prefix string) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds LoggerFromEnv with explicit Options values.
func WithEnvOptions(opts Options) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.options = opts
	}
}

// WithEnvWriter seeds LoggerFromEnv with a default output writer.
func WithEnvWriter(w io.Writer) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.writer = w
	}
}

// LoggerFromEnv builds a logger from environment variables, allowing optional
// seeded options and writers. Environment values override supplied options.
//
// Recognised variables are: {prefix}LEVEL, MODE (console|structured|json),
// TIME_FORMAT, DISABLE_TIMESTAMP, NO_COLOR, FORCE_COLOR, PALETTE, UTC,
// VERBOSE_FIELDS, OMIT_ORIGINAL_FORMAT, PLACEHOLDER_FIELDS,
// NON_FINITE_FLOATS (string|null), TEMPLATE_CACHE_SIZE and OUTPUT.
// TEMPLATE_CACHE_SIZE gives the logger a dedicated template cache of that
// capacity. OUTPUT accepts stdout, stderr, default, a file path, or
// stdout+/stderr+/default+<path> to tee.
func LoggerFromEnv(opts ...LoggerFromEnvOption) Logger {
	cfg := loggerFromEnvConfig{prefix: "LOG_"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolved := cfg.options
	baseWriter := cfg.writer
	if baseWriter == nil {
		baseWriter = os.Stdout
	}
	prefix := cfg.prefix
	if value, ok := lookupEnv(prefix, "LEVEL"); ok {
		if level, ok := ParseLevel(value); ok {
			resolved.MinLevel = level
		}
	}
	if value, ok := lookupEnv(prefix, "MODE"); ok {
		if parsed, ok := parseEnvMode(value); ok {
			resolved.Mode = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "TIME_FORMAT"); ok {
		if parsed := strings.TrimSpace(value); parsed != "" {
			resolved.TimeFormat = parsed
		}
	}
	setEnvBool(prefix, "DISABLE_TIMESTAMP", &resolved.DisableTimestamp)
	setEnvBool(prefix, "NO_COLOR", &resolved.NoColor)
	setEnvBool(prefix, "FORCE_COLOR", &resolved.ForceColor)
	if value, ok := lookupEnv(prefix, "PALETTE"); ok {
		resolved.Palette = ansi.PaletteByName(value)
	}
	setEnvBool(prefix, "UTC", &resolved.UTC)
	setEnvBool(prefix, "VERBOSE_FIELDS", &resolved.VerboseFields)
	setEnvBool(prefix, "OMIT_ORIGINAL_FORMAT", &resolved.OmitOriginalFormat)
	setEnvBool(prefix, "PLACEHOLDER_FIELDS", &resolved.ConsolePlaceholderFields)
	if value, ok := lookupEnv(prefix, "NON_FINITE_FLOATS"); ok {
		if parsed, ok := parseEnvNonFiniteFloats(value); ok {
			resolved.NonFiniteFloatPolicy = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "TEMPLATE_CACHE_SIZE"); ok {
		if size, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && size > 0 {
			resolved.Templates = msgtemplate.NewCache(size)
		}
	}

	outputValue, hasOutput := lookupEnv(prefix, "OUTPUT")
	writer := baseWriter
	var outputErr error
	if hasOutput {
		if w, err := writerFromEnvOutput(outputValue, baseWriter); err != nil {
			outputErr = err
		} else {
			writer = w
		}
	}
	logger := NewWithOptions(writer, resolved)
	if outputErr != nil {
		logger.Error("Could not open log output {Output}", strings.TrimSpace(outputValue), "error", outputErr)
	}
	return logger
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix == "" {
		return os.LookupEnv(key)
	}
	return os.LookupEnv(prefix + key)
}

func setEnvBool(prefix, key string, dst *bool) {
	value, ok := lookupEnv(prefix, key)
	if !ok {
		return
	}
	if parsed, ok := parseEnvBool(value); ok {
		*dst = parsed
	}
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func parseEnvMode(value string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "console":
		return ModeConsole, true
	case "structured", "json":
		return ModeStructured, true
	default:
		return ModeConsole, false
	}
}

func parseEnvNonFiniteFloats(value string) (NonFiniteFloatPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "string":
		return NonFiniteFloatAsString, true
	case "null":
		return NonFiniteFloatAsNull, true
	default:
		return NonFiniteFloatAsString, false
	}
}

func writerFromEnvOutput(value string, base io.Writer) (io.Writer, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return base, nil
	}
	if base == nil {
		base = io.Discard
	}
	switch strings.ToLower(trimmed) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "default":
		return base, nil
	}
	for _, tee := range []struct {
		prefix string
		writer io.Writer
	}{
		{"stdout+", os.Stdout},
		{"stderr+", os.Stderr},
		{"default+", base},
	} {
		if len(trimmed) < len(tee.prefix) || !strings.EqualFold(trimmed[:len(tee.prefix)], tee.prefix) {
			continue
		}
		path := strings.TrimSpace(trimmed[len(tee.prefix):])
		if path == "" {
			return tee.writer, nil
		}
		file, err := openLogOutputFile(path)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(newTeeWriter(tee.writer, file), file), nil
	}
	file, err := openLogOutputFile(trimmed)
	if err != nil {
		return base, err
	}
	return newOwnedOutput(file, file), nil
}
