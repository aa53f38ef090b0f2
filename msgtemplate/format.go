package msgtemplate

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Formattable is implemented by values that interpret their own format
// specifiers. It takes precedence over the built in numeric and time formats.
type Formattable interface {
	FormatTemplate(format string) string
}

const (
	invariantCurrencySymbol = "¤"
	invariantGroupSeparator = ','
	invariantGroupSize      = 3
)

// FormatValue renders v with format using fixed, culture invariant rules. An
// empty format yields the natural string form. Numbers accept the standard
// specifiers C, D, E, F, G, N, P, R and X (with optional precision) as well as
// simple custom patterns such as "#,##0.00". time.Time accepts the standard
// date specifiers and custom patterns such as "yyyy-MM-dd HH:mm:ss". Unknown
// specifiers fall back to the natural form.
func FormatValue(v any, format string) string {
	if v == nil {
		return NullValue
	}
	if format == "" {
		return naturalString(v)
	}
	if f, ok := v.(Formattable); ok {
		return f.FormatTemplate(format)
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return formatTime(x, format)
	case time.Duration:
		return x.String()
	}
	n, ok := numberFrom(v)
	if !ok {
		return naturalString(v)
	}
	if s, ok := formatNumber(n, format); ok {
		return s
	}
	return naturalString(v)
}

// number is the magnitude and sign of a numeric argument.
type number struct {
	neg     bool
	integer bool
	bits    int
	u       uint64
	f       float64
}

func numberFrom(v any) (number, bool) {
	switch x := v.(type) {
	case int:
		return signedNumber(int64(x), strconv.IntSize), true
	case int8:
		return signedNumber(int64(x), 8), true
	case int16:
		return signedNumber(int64(x), 16), true
	case int32:
		return signedNumber(int64(x), 32), true
	case int64:
		return signedNumber(x, 64), true
	case uint:
		return number{integer: true, bits: strconv.IntSize, u: uint64(x)}, true
	case uint8:
		return number{integer: true, bits: 8, u: uint64(x)}, true
	case uint16:
		return number{integer: true, bits: 16, u: uint64(x)}, true
	case uint32:
		return number{integer: true, bits: 32, u: uint64(x)}, true
	case uint64:
		return number{integer: true, bits: 64, u: x}, true
	case uintptr:
		return number{integer: true, bits: 64, u: uint64(x)}, true
	case float32:
		return floatNumber(float64(x)), true
	case float64:
		return floatNumber(x), true
	}
	// Named numeric types such as "type Amount float64".
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumber(rv.Int(), rv.Type().Bits()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{integer: true, bits: rv.Type().Bits(), u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return floatNumber(rv.Float()), true
	}
	return number{}, false
}

func signedNumber(v int64, bits int) number {
	if v < 0 {
		return number{neg: true, integer: true, bits: bits, u: uint64(-(v + 1)) + 1}
	}
	return number{integer: true, bits: bits, u: uint64(v)}
}

func floatNumber(f float64) number {
	if math.Signbit(f) && !math.IsNaN(f) {
		return number{neg: true, bits: 64, f: -f}
	}
	return number{bits: 64, f: f}
}

func (n number) float() float64 {
	if n.integer {
		return float64(n.u)
	}
	return n.f
}

func (n number) finite() bool {
	return n.integer || !(math.IsNaN(n.f) || math.IsInf(n.f, 0))
}

// fixed returns the magnitude with exactly prec fractional digits.
func (n number) fixed(prec int) string {
	if n.integer {
		s := strconv.FormatUint(n.u, 10)
		if prec > 0 {
			s += "." + strings.Repeat("0", prec)
		}
		return s
	}
	return strconv.FormatFloat(n.f, 'f', prec, 64)
}

// parseStandardFormat splits a standard specifier such as "N2" into its
// letter and precision. precision is -1 when absent.
func parseStandardFormat(format string) (byte, int, bool) {
	if len(format) == 0 || len(format) > 3 {
		return 0, 0, false
	}
	c := format[0]
	if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
		return 0, 0, false
	}
	if len(format) == 1 {
		return c, -1, true
	}
	prec, err := strconv.Atoi(format[1:])
	if err != nil || prec < 0 {
		return 0, 0, false
	}
	return c, prec, true
}

func formatNumber(n number, format string) (string, bool) {
	letter, prec, ok := parseStandardFormat(format)
	if !ok {
		return formatCustomNumber(n, format)
	}
	if !n.finite() {
		return nonFiniteString(n), true
	}
	switch letter {
	case 'C', 'c':
		if prec < 0 {
			prec = 2
		}
		s := invariantCurrencySymbol + groupDigits(n.fixed(prec))
		if n.neg && !allZero(s) {
			return "(" + s + ")", true
		}
		return s, true
	case 'D', 'd':
		if !n.integer {
			return "", false
		}
		s := strconv.FormatUint(n.u, 10)
		s = padLeft(s, prec, '0')
		return signed(n.neg, s), true
	case 'E', 'e':
		if prec < 0 {
			prec = 6
		}
		return signed(n.neg, exponential(n.float(), prec, letter == 'E', 3)), true
	case 'F', 'f':
		if prec < 0 {
			prec = 2
		}
		return signed(n.neg, n.fixed(prec)), true
	case 'G', 'g':
		return signed(n.neg, general(n, prec, letter == 'G')), true
	case 'N', 'n':
		if prec < 0 {
			prec = 2
		}
		return signed(n.neg, groupDigits(n.fixed(prec))), true
	case 'P', 'p':
		if prec < 0 {
			prec = 2
		}
		scaled := floatNumber(n.float() * 100)
		return signed(n.neg, groupDigits(scaled.fixed(prec))) + " %", true
	case 'R', 'r':
		return signed(n.neg, naturalMagnitude(n)), true
	case 'X', 'x':
		if !n.integer {
			return "", false
		}
		u := n.u
		if n.neg {
			u = -u
			if n.bits < 64 {
				u &= 1<<uint(n.bits) - 1
			}
		}
		s := strconv.FormatUint(u, 16)
		if letter == 'X' {
			s = strings.ToUpper(s)
		}
		return padLeft(s, prec, '0'), true
	}
	return "", false
}

func nonFiniteString(n number) string {
	switch {
	case math.IsNaN(n.f):
		return "NaN"
	case n.neg:
		return "-Infinity"
	default:
		return "Infinity"
	}
}

func naturalMagnitude(n number) string {
	if n.integer {
		return strconv.FormatUint(n.u, 10)
	}
	return formatFloat(n.f)
}

func general(n number, prec int, upper bool) string {
	if prec <= 0 {
		return naturalMagnitude(n)
	}
	s := strconv.FormatFloat(n.float(), 'g', prec, 64)
	mant, exp, found := strings.Cut(s, "e")
	if !found {
		return s
	}
	return mant + exponentSuffix(exp, upper, 2)
}

func exponential(f float64, prec int, upper bool, minExpDigits int) string {
	s := strconv.FormatFloat(f, 'e', prec, 64)
	mant, exp, _ := strings.Cut(s, "e")
	return mant + exponentSuffix(exp, upper, minExpDigits)
}

// exponentSuffix rewrites strconv's "+03" exponent to the invariant form with
// at least minDigits digits.
func exponentSuffix(exp string, upper bool, minDigits int) string {
	sign := byte('+')
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		sign = exp[0]
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	exp = padLeft(exp, minDigits, '0')
	letter := "e"
	if upper {
		letter = "E"
	}
	return letter + string(sign) + exp
}

func signed(neg bool, s string) string {
	if neg && !allZero(s) {
		return "-" + s
	}
	return s
}

func allZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '1' && s[i] <= '9' {
			return false
		}
	}
	return true
}

func padLeft(s string, width int, pad byte) string {
	if width <= len(s) {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}

// groupDigits inserts group separators into the integer part of a plain
// decimal string.
func groupDigits(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= invariantGroupSize {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(intPart)/invariantGroupSize)
	lead := len(intPart) % invariantGroupSize
	if lead == 0 {
		lead = invariantGroupSize
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += invariantGroupSize {
		b.WriteByte(invariantGroupSeparator)
		b.WriteString(intPart[i : i+invariantGroupSize])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// formatCustomNumber handles patterns built from '0', '#', '.', ',' and '%'
// with optional literal text before and after the digit placeholders.
func formatCustomNumber(n number, pattern string) (string, bool) {
	first := strings.IndexAny(pattern, "0#")
	if first < 0 {
		return "", false
	}
	last := strings.LastIndexAny(pattern, "0#")
	body := pattern[first : last+1]
	prefix := pattern[:first]
	suffix := pattern[last+1:]
	if strings.HasSuffix(prefix, ".") {
		prefix = prefix[:len(prefix)-1]
		body = "." + body
	}

	intPattern, fracPattern, _ := strings.Cut(body, ".")
	minInt := strings.Count(intPattern, "0")
	grouped := strings.Contains(intPattern, ",")
	minFrac := strings.Count(fracPattern, "0")
	maxFrac := minFrac + strings.Count(fracPattern, "#")

	if !n.finite() {
		return nonFiniteString(n), true
	}
	if strings.Contains(prefix, "%") || strings.Contains(suffix, "%") {
		neg := n.neg
		n = floatNumber(n.float() * 100)
		n.neg = neg
	}

	digits := n.fixed(maxFrac)
	intDigits, fracDigits, _ := strings.Cut(digits, ".")
	for len(fracDigits) > minFrac && strings.HasSuffix(fracDigits, "0") {
		fracDigits = fracDigits[:len(fracDigits)-1]
	}
	if intDigits == "0" && minInt == 0 {
		intDigits = ""
	}
	intDigits = padLeft(intDigits, minInt, '0')
	if grouped {
		intDigits = groupDigits(intDigits)
	}

	var b strings.Builder
	if n.neg && !allZero(intDigits+fracDigits) {
		b.WriteByte('-')
	}
	b.WriteString(prefix)
	b.WriteString(intDigits)
	if fracDigits != "" {
		b.WriteByte('.')
		b.WriteString(fracDigits)
	}
	b.WriteString(suffix)
	return b.String(), true
}
