package store

import (
	"regexp"
	"strconv"
	"time"
)

var chipLevelRE = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

// ParseChipLevel extracts small/big blind from text like "1/2" or "盲注 5/10".
// Unrecognizable input yields (0, 0).
func ParseChipLevel(s string) (sb, bb int) {
	m := chipLevelRE.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, 0
	}
	sb, _ = strconv.Atoi(m[1])
	bb, _ = strconv.Atoi(m[2])
	return sb, bb
}

// Clock layouts seen on summary screens, most specific first. The common
// form omits the year ("07-11 02:47").
var clockLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01-02 15:04",
	"1-2 15:04",
}

// ParseSessionClock parses a screenshot timestamp. Yearless forms resolve
// against ref's year in ref's location. Unparseable input yields the zero
// time rather than an error; callers decide acceptability.
func ParseSessionClock(s string, ref time.Time) time.Time {
	for _, layout := range clockLayouts {
		t, err := time.ParseInLocation(layout, s, ref.Location())
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = time.Date(ref.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, ref.Location())
		}
		return t
	}
	return time.Time{}
}
