package vision

import "testing"

func TestNormalizeVariants(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"+1,234", 1234},
		{"−5,00", -500}, // U+2212 minus with a stray comma
		{"−500", -500},
		{"–42", -42},
		{"—42", -42},
		{"  33980 ", 33980},
		{"0", 0},
		{"+0", 0},
		{"3000", 3000},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		if !got.Parsed || got.Int != c.want {
			t.Fatalf("Normalize(%q) = %+v, want %d", c.in, got, c.want)
		}
	}
}

func TestNormalizePassthrough(t *testing.T) {
	for _, in := range []string{"abc", "", "12a4", "看君醉", "1.5", "--3", "9999999999999999999999"} {
		got := Normalize(in)
		if got.Parsed {
			t.Fatalf("Normalize(%q) unexpectedly parsed to %d", in, got.Int)
		}
	}
	if got := Normalize("  abc  "); got.Raw != "abc" {
		t.Fatalf("raw value should be trimmed, got %q", got.Raw)
	}
}

func TestNumJSON(t *testing.T) {
	b, err := IntNum(-500).MarshalJSON()
	if err != nil || string(b) != "-500" {
		t.Fatalf("got %s err=%v", b, err)
	}
	b, err = RawNum("abc").MarshalJSON()
	if err != nil || string(b) != `"abc"` {
		t.Fatalf("got %s err=%v", b, err)
	}
}
