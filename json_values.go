package tmplog

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"pkt.systems/tmplog/msgtemplate"
)

// writeJSONValue encodes a field value. Scalars are written directly;
// sequences become arrays; anything else goes through encoding/json.
func writeJSONValue(lw *lineWriter, value any, policy NonFiniteFloatPolicy) {
	switch v := value.(type) {
	case nil:
		lw.writeString("null")
	case string:
		writeJSONString(lw, v)
	case bool:
		lw.writeBool(v)
	case int:
		lw.writeInt64(int64(v))
	case int8:
		lw.writeInt64(int64(v))
	case int16:
		lw.writeInt64(int64(v))
	case int32:
		lw.writeInt64(int64(v))
	case int64:
		lw.writeInt64(v)
	case uint:
		lw.writeUint64(uint64(v))
	case uint8:
		lw.writeUint64(uint64(v))
	case uint16:
		lw.writeUint64(uint64(v))
	case uint32:
		lw.writeUint64(uint64(v))
	case uint64:
		lw.writeUint64(v)
	case uintptr:
		lw.writeUint64(uint64(v))
	case float32:
		writeJSONFloat(lw, float64(v), policy)
	case float64:
		writeJSONFloat(lw, v, policy)
	case time.Time:
		writeJSONString(lw, v.Format(time.RFC3339Nano))
	case time.Duration:
		writeJSONString(lw, v.String())
	case []byte:
		writeJSONString(lw, string(v))
	case json.Number:
		lw.writeString(v.String())
	case []any:
		lw.writeByte('[')
		for i, elem := range v {
			if i > 0 {
				lw.writeByte(',')
			}
			writeJSONValue(lw, elem, policy)
		}
		lw.writeByte(']')
	case msgtemplate.Sequence:
		if isNilPointer(v) {
			lw.writeString("null")
			return
		}
		lw.writeByte('[')
		i := 0
		for elem := range v.Values() {
			if i > 0 {
				lw.writeByte(',')
			}
			writeJSONValue(lw, elem, policy)
			i++
		}
		lw.writeByte(']')
	case fmt.Stringer:
		if isNilPointer(v) {
			lw.writeString("null")
			return
		}
		writeJSONString(lw, v.String())
	case error:
		if isNilPointer(v) {
			lw.writeString("null")
			return
		}
		writeJSONString(lw, v.Error())
	default:
		b, err := json.Marshal(v)
		if err != nil {
			writeJSONString(lw, err.Error())
			return
		}
		lw.writeBytes(b)
	}
}

func writeJSONFloat(lw *lineWriter, f float64, policy NonFiniteFloatPolicy) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if policy == NonFiniteFloatAsNull {
			lw.writeString("null")
			return
		}
		writeJSONString(lw, strconv.FormatFloat(f, 'f', -1, 64))
		return
	}
	lw.writeFloat64(f)
}

// isNilPointer reports whether an interface holds a typed nil, which would
// panic when its methods are called.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
