package tmplog_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pkt.systems/tmplog"
	"pkt.systems/tmplog/msgtemplate"
)

func FuzzStructuredEntryIsValidJSON(f *testing.F) {
	seeds := []struct {
		template string
		arg      string
	}{
		{"User {User} logged in", "alice"},
		{"{{literal}} {A,-5:N2}", "x"},
		{"unterminated {Open", "\"quoted\""},
		{"", "\n\t\x00"},
		{"{}{}{", "<'>"},
	}
	for _, seed := range seeds {
		f.Add(seed.template, seed.arg)
	}
	cache := msgtemplate.NewCache(64)
	f.Fuzz(func(t *testing.T, template, arg string) {
		var buf bytes.Buffer
		logger := tmplog.NewWithOptions(&buf, tmplog.Options{
			Mode:             tmplog.ModeStructured,
			DisableTimestamp: true,
			Templates:        cache,
		})
		logger.Info(template, arg, 42, "key", arg)

		line := strings.TrimSuffix(buf.String(), "\n")
		if strings.Contains(line, "\n") {
			t.Fatalf("entry spans lines: %q", line)
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			t.Fatalf("invalid json %q: %v", line, err)
		}
		if template != "" && payload[msgtemplate.OriginalFormatKey] != template && strings.ToValidUTF8(template, "�") == template {
			t.Fatalf("original format mismatch: got %v want %q", payload[msgtemplate.OriginalFormatKey], template)
		}
	})
}
