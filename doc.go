// Package tmplog is a structured and console logger whose messages are
// message templates: `"User {User} logged in from {Address}"` rather than
// pre-formatted strings.
//
// Arguments bind positionally to the named placeholders of the template. The
// rendered message goes into the `msg` field, every placeholder also becomes
// a field of its own carrying the unformatted argument, and the raw template
// is kept under `{OriginalFormat}` so entries can be grouped by event type
// regardless of their values. Arguments beyond the placeholders are ordinary
// key/value pairs.
//
// # Design overview
//
//   - Templates are compiled once through a bounded cache (see the
//     msgtemplate subpackage) and shared by every logger in the process
//     unless Options.Templates injects a dedicated cache.
//   - Construction-time setup: options resolve palettes, time layouts and
//     With fields once, so a log call only renders the template and encodes
//     the call site values.
//   - Chunk-aware scans: JSON escaping and the console quoting check walk
//     eight bytes at a time, copying safe spans in one step.
//
// # Usage
//
//	logger := tmplog.NewStructured(os.Stdout).With("service", "checkout")
//	logger.Info("Order {OrderId} shipped in {Elapsed:F1} ms", 4711, 12.345, "region", "eu")
//
// produces
//
//	{"ts":"...","lvl":"info","msg":"Order 4711 shipped in 12.3 ms","service":"checkout","OrderId":4711,"Elapsed":12.345,"region":"eu","{OriginalFormat}":"Order {OrderId} shipped in {Elapsed:F1} ms"}
//
// The console adapter prints the rendered message followed by the remaining
// key/value pairs, highlighting substituted values when colour is enabled:
//
//	logger := tmplog.New(os.Stdout)
//	logger.Warn("Cache miss for {Key}", "user:42", "attempt", 3)
//
// Literal braces are written doubled: `"{{literal}}"` renders `{literal}`.
//
// # Integration notes
//
//   - Use Logger.LogLevel to derive loggers with different minimum levels.
//   - LoggerFromEnv configures a logger from LOG_* environment variables.
//   - LogLogger bridges to the standard library by returning a *log.Logger
//     whose lines are logged verbatim.
package tmplog
