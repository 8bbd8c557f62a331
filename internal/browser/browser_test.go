package browser

import (
	"strings"
	"testing"
	"time"
)

func TestLooksLikeErrorPage(t *testing.T) {
	long := strings.Repeat("conversation text ", 20)
	cases := []struct {
		body string
		want bool
	}{
		{"", true},
		{"short page", true},
		{long + "An Error occurred while loading.", true},
		{long, false},
	}
	for _, c := range cases {
		if got := LooksLikeErrorPage(c.body); got != c.want {
			t.Fatalf("LooksLikeErrorPage(%.30q...) = %t, want %t", c.body, got, c.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("  hello  ", 200); got != "hello" {
		t.Fatalf("expected trimmed snippet, got %q", got)
	}
	long := strings.Repeat("x", 300)
	got := Snippet(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated snippet with ellipsis, got %d chars", len(got))
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.IndicatorTimeout != 15*time.Second {
		t.Fatalf("expected 15s indicator timeout, got %v", o.IndicatorTimeout)
	}
	if o.SettleDelay != 5*time.Second {
		t.Fatalf("expected 5s settle delay, got %v", o.SettleDelay)
	}
	if o.WindowWidth != 1920 || o.WindowHeight != 1080 {
		t.Fatalf("unexpected viewport %dx%d", o.WindowWidth, o.WindowHeight)
	}
	if !strings.Contains(o.UserAgent, "Chrome/") {
		t.Fatalf("expected realistic Chrome user agent, got %q", o.UserAgent)
	}
}
