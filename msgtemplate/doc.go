// Package msgtemplate compiles message templates with named placeholders into
// positional form and renders them.
//
// A template such as
//
//	"User {UserName} logged in from {Address}"
//
// compiles to the positional format "User {0} logged in from {1}" plus the
// ordered names ["UserName", "Address"]. Placeholders may carry an alignment
// and a format specifier, "{Amount,10:N2}", which are kept verbatim. Doubled
// braces ("{{" and "}}") are literal braces.
//
// # Compilation
//
// Brace matching is a single forward scan per delimiter without backtracking.
// Malformed templates never fail: an opening brace without a matching close
// copies the remaining text through unchanged.
//
// # Caching
//
// [Cache] maps raw template strings to compiled [Template] values. It grows
// until it holds its configured number of entries and then stops growing:
// further new templates are compiled on every call instead of evicting old
// ones. [Default] returns the process-wide instance.
//
// # Rendering
//
// [Template.Render] prepares every argument with [FormatArgument] (nil,
// strings and sequences) and formats it with [FormatValue], which applies
// culture invariant numeric and date specifiers. [Template.Values] exposes the
// same data as name/value pairs for structured sinks, ending with the
// synthetic "{OriginalFormat}" entry.
//
// # Thread Safety
//
// Templates are immutable. All [Cache] methods are safe for concurrent use.
package msgtemplate
