package store

import (
	"testing"
	"time"
)

func TestParseChipLevel(t *testing.T) {
	cases := []struct {
		in     string
		sb, bb int
	}{
		{"1/2", 1, 2},
		{"5 / 10", 5, 10},
		{"盲注 25/50", 25, 50},
		{"", 0, 0},
		{"abc", 0, 0},
	}
	for _, c := range cases {
		sb, bb := ParseChipLevel(c.in)
		if sb != c.sb || bb != c.bb {
			t.Fatalf("ParseChipLevel(%q) = %d/%d, want %d/%d", c.in, sb, bb, c.sb, c.bb)
		}
	}
}

func TestParseSessionClock(t *testing.T) {
	ref := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

	got := ParseSessionClock("07-11 02:47", ref)
	want := time.Date(2025, 7, 11, 2, 47, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("yearless clock: got %v want %v", got, want)
	}

	got = ParseSessionClock("2024-12-31 23:59", ref)
	if got.Year() != 2024 || got.Month() != 12 {
		t.Fatalf("explicit year ignored: %v", got)
	}

	if got := ParseSessionClock("garbled", ref); !got.IsZero() {
		t.Fatalf("unparseable clock must yield zero time, got %v", got)
	}
}
