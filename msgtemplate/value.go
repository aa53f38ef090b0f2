package msgtemplate

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// NullValue is what a nil argument renders as.
const NullValue = "(null)"

const sequenceSeparator = ", "

// Sequence is implemented by values that should render as a comma separated
// list of their elements rather than through their own string form.
type Sequence interface {
	Values() iter.Seq[any]
}

// FormatArgument prepares a single argument for substitution. Nil becomes
// NullValue, strings pass through, sequences are joined with ", " and every
// other value is returned untouched so a format specifier can still apply.
func FormatArgument(v any) any {
	switch x := v.(type) {
	case nil:
		return NullValue
	case string:
		return x
	case []byte:
		return string(x)
	case Sequence:
		return joinSeq(x.Values())
	case []any:
		return joinSlice(x)
	case []string:
		return joinStrings(x)
	case []int:
		return joinInts(x)
	case []int64:
		return joinInts(x)
	case []float64:
		return joinFunc(x, formatFloat)
	case []error:
		return joinFunc(x, func(err error) string {
			if err == nil {
				return NullValue
			}
			return err.Error()
		})
	case error, fmt.Stringer:
		if isNilValue(v) {
			return NullValue
		}
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return NullValue
		}
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return joinReflect(rv)
	}
	return v
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func joinSeq(seq iter.Seq[any]) string {
	var b strings.Builder
	first := true
	for elem := range seq {
		if !first {
			b.WriteString(sequenceSeparator)
		}
		first = false
		b.WriteString(elementString(elem))
	}
	return b.String()
}

func joinSlice(values []any) string {
	return joinFunc(values, elementString)
}

func joinStrings(values []string) string {
	return strings.Join(values, sequenceSeparator)
}

func joinInts[T int | int64](values []T) string {
	var b strings.Builder
	var scratch [24]byte
	for i, v := range values {
		if i > 0 {
			b.WriteString(sequenceSeparator)
		}
		b.Write(strconv.AppendInt(scratch[:0], int64(v), 10))
	}
	return b.String()
}

func joinFunc[T any](values []T, render func(T) string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(sequenceSeparator)
		}
		b.WriteString(render(v))
	}
	return b.String()
}

func joinReflect(rv reflect.Value) string {
	var b strings.Builder
	for i := range rv.Len() {
		if i > 0 {
			b.WriteString(sequenceSeparator)
		}
		b.WriteString(elementString(rv.Index(i).Interface()))
	}
	return b.String()
}

// elementString renders a sequence element. Elements are not expanded
// further: a nested slice uses its natural form.
func elementString(v any) string {
	if v == nil || isNilValue(v) {
		return NullValue
	}
	return naturalString(v)
}

// naturalString is the invariant string form of v used when no format
// specifier applies.
func naturalString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uintptr:
		return strconv.FormatUint(uint64(x), 10)
	case float32:
		return formatFloatBits(float64(x), 32)
	case float64:
		return formatFloat(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case time.Duration:
		return x.String()
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
			return formatFloatBits(rv.Float(), rv.Type().Bits())
		}
		return fmt.Sprint(v)
	}
}

// Natural float output switches to exponent notation outside
// [minPlainFloat, maxPlainFloat), matching the invariant round-trip form.
const (
	minPlainFloat = 1e-5
	maxPlainFloat = 1e15
)

func formatFloat(f float64) string {
	return formatFloatBits(f, 64)
}

func formatFloatBits(f float64, bits int) string {
	abs := math.Abs(f)
	if abs != 0 && !math.IsInf(f, 0) && (abs < minPlainFloat || abs >= maxPlainFloat) {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + exponentSuffix(exp, true, 2)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
