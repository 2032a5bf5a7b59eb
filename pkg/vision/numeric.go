package vision

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Num is the result of best-effort numeric normalization: either a parsed
// integer or, when parsing fails, the original trimmed string. The
// zero value is an unparsed empty string.
type Num struct {
	Int    int64
	Raw    string
	Parsed bool
}

// IntNum wraps a parsed integer.
func IntNum(n int64) Num { return Num{Int: n, Parsed: true} }

// RawNum wraps an unparseable string.
func RawNum(s string) Num { return Num{Raw: s} }

func (n Num) String() string {
	if n.Parsed {
		return strconv.FormatInt(n.Int, 10)
	}
	return n.Raw
}

// MarshalJSON emits a JSON number for parsed values and a string otherwise,
// matching the int-or-string contract of the record fields.
func (n Num) MarshalJSON() ([]byte, error) {
	if n.Parsed {
		return json.Marshal(n.Int)
	}
	return json.Marshal(n.Raw)
}

// numCleaner strips thousands separators and maps the minus-sign glyphs
// Tesseract commonly emits to the ASCII hyphen.
var numCleaner = strings.NewReplacer(
	",", "",
	"，", "",
	"−", "-", // U+2212 minus sign
	"–", "-", // en dash
	"—", "-", // em dash
	"﹣", "-",
	"－", "-", // fullwidth hyphen
)

// Normalize converts recognized text into an integer when possible. It never
// fails: on any parse failure the trimmed input passes through as Raw.
func Normalize(s string) Num {
	trimmed := strings.TrimSpace(s)
	cleaned := numCleaner.Replace(trimmed)
	cleaned = strings.TrimPrefix(cleaned, "+")
	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return Num{Int: v, Parsed: true}
	}
	return Num{Raw: trimmed}
}
