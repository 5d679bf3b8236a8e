package oracle

import (
	"strconv"
	"strings"
)

// Count is a quantity captured from ability text. X counts are resolved
// against the triggering ability's announced X value at apply time.
type Count struct {
	Value int
	IsX   bool
}

// Resolve returns the concrete amount, substituting x for X counts.
func (c Count) Resolve(x int) int {
	if c.IsX {
		return x
	}
	return c.Value
}

// FixedCount builds a non-X count.
func FixedCount(n int) Count { return Count{Value: n} }

var wordNumbers = map[string]int{
	"a": 1, "an": 1, "one": 1,
	"two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
}

// ParseCount reads a count in word ("a", "three"), numeral ("3"), or "x"
// form.
func ParseCount(s string) (Count, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Count{}, false
	}
	if s == "x" {
		return Count{IsX: true}, true
	}
	if n, ok := wordNumbers[s]; ok {
		return Count{Value: n}, true
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return Count{Value: n}, true
	}
	return Count{}, false
}

// countAlternatives is the regexp fragment matching any count form.
const countAlternatives = `(x|a|an|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|\d+)`

// parseSigned reads "+3" / "-2" / "0" boost components.
func parseSigned(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, false
	}
	return n, true
}
