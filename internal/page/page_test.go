package page

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil, "/about")

	c.Alert("Invalid JSON")
	c.Reload()
	c.Navigate("/admin")

	out := buf.String()
	for _, want := range []string{"Invalid JSON", "reload /about", "/admin"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if c.Current() != "/admin" {
		t.Errorf("Current = %q, want /admin", c.Current())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var _ Notifier = &r
	var _ Navigator = &r

	r.Alert("a")
	r.Reload()
	r.Reload()
	r.Navigate("/admin")

	if len(r.Alerts) != 1 || r.Reloads != 2 || len(r.Navigated) != 1 {
		t.Errorf("unexpected recording: %+v", &r)
	}
}
