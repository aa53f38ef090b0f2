package msgtemplate

import (
	"strconv"
	"time"
)

// Standard date and time specifiers, invariant culture.
var standardTimeLayouts = map[string]string{
	"d": "01/02/2006",
	"D": "Monday, 02 January 2006",
	"f": "Monday, 02 January 2006 15:04",
	"F": "Monday, 02 January 2006 15:04:05",
	"g": "01/02/2006 15:04",
	"G": "01/02/2006 15:04:05",
	"m": "January 02",
	"M": "January 02",
	"o": "2006-01-02T15:04:05.0000000Z07:00",
	"O": "2006-01-02T15:04:05.0000000Z07:00",
	"s": "2006-01-02T15:04:05",
	"t": "15:04",
	"T": "15:04:05",
	"y": "2006 January",
	"Y": "2006 January",
}

func formatTime(t time.Time, format string) string {
	switch format {
	case "u":
		return t.UTC().Format("2006-01-02 15:04:05Z")
	case "U":
		return t.UTC().Format("Monday, 02 January 2006 15:04:05")
	case "r", "R":
		return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
	}
	if layout, ok := standardTimeLayouts[format]; ok {
		return t.Format(layout)
	}
	if len(format) == 1 {
		return naturalString(t)
	}
	return string(appendCustomTime(make([]byte, 0, len(format)+8), t, format))
}

// appendCustomTime renders custom date patterns: y, M, d, H, h, m, s, f, F,
// t, z and K runs, quoted literals and backslash escapes.
func appendCustomTime(dst []byte, t time.Time, layout string) []byte {
	for i := 0; i < len(layout); {
		c := layout[i]
		run := 1
		for i+run < len(layout) && layout[i+run] == c {
			run++
		}
		switch c {
		case 'y':
			year := t.Year()
			if run <= 2 {
				dst = appendPadded(dst, year%100, run)
			} else {
				dst = appendPadded(dst, year, run)
			}
		case 'M':
			switch {
			case run >= 4:
				dst = append(dst, t.Month().String()...)
			case run == 3:
				dst = append(dst, t.Month().String()[:3]...)
			default:
				dst = appendPadded(dst, int(t.Month()), run)
			}
		case 'd':
			switch {
			case run >= 4:
				dst = append(dst, t.Weekday().String()...)
			case run == 3:
				dst = append(dst, t.Weekday().String()[:3]...)
			default:
				dst = appendPadded(dst, t.Day(), run)
			}
		case 'H':
			dst = appendPadded(dst, t.Hour(), min(run, 2))
		case 'h':
			hour := t.Hour() % 12
			if hour == 0 {
				hour = 12
			}
			dst = appendPadded(dst, hour, min(run, 2))
		case 'm':
			dst = appendPadded(dst, t.Minute(), min(run, 2))
		case 's':
			dst = appendPadded(dst, t.Second(), min(run, 2))
		case 'f', 'F':
			digits := min(run, 7)
			frac := t.Nanosecond()
			for range 9 - digits {
				frac /= 10
			}
			text := strconv.AppendInt(nil, int64(frac), 10)
			for len(text) < digits {
				text = append([]byte{'0'}, text...)
			}
			if c == 'F' {
				for len(text) > 0 && text[len(text)-1] == '0' {
					text = text[:len(text)-1]
				}
				if len(text) == 0 && len(dst) > 0 && dst[len(dst)-1] == '.' {
					dst = dst[:len(dst)-1]
				}
			}
			dst = append(dst, text...)
		case 't':
			marker := "AM"
			if t.Hour() >= 12 {
				marker = "PM"
			}
			if run == 1 {
				marker = marker[:1]
			}
			dst = append(dst, marker...)
		case 'z':
			dst = appendOffset(dst, t, run)
		case 'K':
			if t.Location() == time.UTC {
				dst = append(dst, 'Z')
			} else {
				dst = appendOffset(dst, t, 3)
			}
		case '\'', '"':
			end := i + 1
			for end < len(layout) && layout[end] != c {
				end++
			}
			dst = append(dst, layout[i+1:end]...)
			i = end + 1
			continue
		case '\\':
			if i+1 < len(layout) {
				dst = append(dst, layout[i+1])
			}
			i += 2
			continue
		case '%':
		default:
			dst = append(dst, layout[i:i+run]...)
		}
		i += run
	}
	return dst
}

func appendPadded(dst []byte, v, width int) []byte {
	var scratch [20]byte
	s := strconv.AppendInt(scratch[:0], int64(v), 10)
	for n := len(s); n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, s...)
}

func appendOffset(dst []byte, t time.Time, run int) []byte {
	_, offset := t.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	dst = append(dst, sign)
	hours := offset / 3600
	minutes := offset % 3600 / 60
	if run == 1 {
		return appendPadded(dst, hours, 1)
	}
	dst = appendPadded(dst, hours, 2)
	if run >= 3 {
		dst = append(dst, ':')
		dst = appendPadded(dst, minutes, 2)
	}
	return dst
}
