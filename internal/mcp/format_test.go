package mcp

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	cases := map[string]struct {
		in   any
		want string
	}{
		"small int":    {42, "42"},
		"thousands":    {1234, "1,234"},
		"millions":     {uint64(1_234_567), "1,234,567"},
		"exact groups": {int64(123456), "123,456"},
		"decimal string": {"1000000000000000000000", "1,000,000,000,000,000,000,000"},
		"non-numeric":    {"n/a", "n/a"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := formatNumber(tc.in); got != tc.want {
				t.Errorf("formatNumber(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestJoinLinesKeepsBlankSeparators(t *testing.T) {
	got := joinLines("## Header", "body", "", "footer")
	want := "## Header\nbody\n\nfooter"
	if got != want {
		t.Errorf("joinLines() = %q, want %q", got, want)
	}
}

func TestFormatWei(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"one gwei":   {"1000000000", "1 gwei"},
		"fractional": {"1500000000", "1.5 gwei"},
		"sub gwei":   {"1000000", "0.001 gwei"},
		"not wei":    {"oops", "oops wei"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := formatWei(tc.in); got != tc.want {
				t.Errorf("formatWei(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := formatElapsed(1234567 * time.Microsecond); got != "1.235s" {
		t.Errorf("formatElapsed() = %q, want 1.235s", got)
	}
}
