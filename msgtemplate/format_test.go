package msgtemplate_test

import (
	"math"
	"testing"
	"time"

	"pkt.systems/tmplog/msgtemplate"
)

func TestFormatValueNumbers(t *testing.T) {
	tests := []struct {
		value  any
		format string
		want   string
	}{
		{1234.5, "C2", "¤1,234.50"},
		{1234.5, "C", "¤1,234.50"},
		{-5, "C2", "(¤5.00)"},
		{42, "D4", "0042"},
		{-42, "D4", "-0042"},
		{uint8(7), "d", "7"},
		{12345.678, "E2", "1.23E+004"},
		{12345.678, "e3", "1.235e+004"},
		{3.14159, "F3", "3.142"},
		{3, "F", "3.00"},
		{12345.678, "G4", "1.235E+04"},
		{1234.5, "G", "1234.5"},
		{1234567, "N0", "1,234,567"},
		{-1234.5, "N2", "-1,234.50"},
		{999, "N1", "999.0"},
		{0.256, "P1", "25.6 %"},
		{0.5, "P0", "50 %"},
		{-0.5, "P0", "-50 %"},
		{0.1, "R", "0.1"},
		{255, "X", "FF"},
		{255, "x4", "00ff"},
		{int8(-1), "X", "FF"},
		{int16(-2), "X", "FFFE"},
		{3.14159, "0.00", "3.14"},
		{-3.14159, "0.00", "-3.14"},
		{7, "000", "007"},
		{7, "0.00", "7.00"},
		{1234567.89, "#,##0.0", "1,234,567.9"},
		{0.5, "#.##", ".5"},
		{0.256, "0.#%", "25.6%"},
		{12.5, "$0.00", "$12.50"},
		{3.5, "D2", "3.5"},
		{3.5, "X", "3.5"},
		{3.5, "Q", "3.5"},
		{math.NaN(), "N2", "NaN"},
		{math.Inf(-1), "F2", "-Infinity"},
		{math.Inf(1), "0.00", "Infinity"},
		{-0.001, "F2", "0.00"},
		{amount(1234.5), "C2", "¤1,234.50"},
		{count(42), "D5", "00042"},
		{1e300, "R", "1E+300"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := msgtemplate.FormatValue(tt.value, tt.format)
			if got != tt.want {
				t.Fatalf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatValueNatural(t *testing.T) {
	if got := msgtemplate.FormatValue(nil, ""); got != msgtemplate.NullValue {
		t.Fatalf("nil rendered as %q", got)
	}
	if got := msgtemplate.FormatValue(float32(0.1), ""); got != "0.1" {
		t.Fatalf("float32 rendered as %q", got)
	}
	if got := msgtemplate.FormatValue(uint64(math.MaxUint64), ""); got != "18446744073709551615" {
		t.Fatalf("uint64 rendered as %q", got)
	}
	if got := msgtemplate.FormatValue(map[string]int{"a": 1}, ""); got != "map[a:1]" {
		t.Fatalf("map rendered as %q", got)
	}
}

func TestFormatValueTime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 123456789, time.UTC)
	plus2 := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.FixedZone("X", 2*3600))
	tests := []struct {
		value  time.Time
		format string
		want   string
	}{
		{ts, "yyyy-MM-dd HH:mm:ss.fff", "2024-03-05 14:07:09.123"},
		{ts, "s", "2024-03-05T14:07:09"},
		{ts, "o", "2024-03-05T14:07:09.1234567Z"},
		{ts, "u", "2024-03-05 14:07:09Z"},
		{ts, "d", "03/05/2024"},
		{ts, "T", "14:07:09"},
		{ts, "r", "Tue, 05 Mar 2024 14:07:09 GMT"},
		{ts, "dddd, MMM d", "Tuesday, Mar 5"},
		{ts, "MMMM yy", "March 24"},
		{ts, "h:mm tt", "2:07 PM"},
		{ts, "HH:mm:ss.FFF", "14:07:09.123"},
		{ts, "'Day' d", "Day 5"},
		{ts, `yyyy\-MM`, "2024-03"},
		{ts, "HH:mmK", "14:07Z"},
		{plus2, "HH:mm:ss.FFF", "14:07:09"},
		{plus2, "HH:mm zzz", "14:07 +02:00"},
		{plus2, "%z", "+2"},
		{plus2, "o", "2024-03-05T14:07:09.0000000+02:00"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := msgtemplate.FormatValue(tt.value, tt.format)
			if got != tt.want {
				t.Fatalf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.format, got, tt.want)
			}
		})
	}
}

func TestRenderTimeThroughTemplate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	got := msgtemplate.Compile("{{{When:yyyy-MM-dd}}} {When}").Render(ts, ts)
	want := "{2024-03-05} 2024-03-05T14:07:09Z"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
