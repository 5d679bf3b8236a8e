package mana

import (
	"fmt"
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseSymbols parses a mana symbol string such as "{R}{R}{G}" into the
// sequence of colors it produces. Symbols that do not name a producible
// color ({X}, generic numbers, hybrids) are rejected so callers can fall
// back to other handling.
func ParseSymbols(s string) ([]Color, error) {
	matches := symbolPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no mana symbols in %q", s)
	}

	colors := make([]Color, 0, len(matches))
	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		switch symbol {
		case "W":
			colors = append(colors, White)
		case "U":
			colors = append(colors, Blue)
		case "B":
			colors = append(colors, Black)
		case "R":
			colors = append(colors, Red)
		case "G":
			colors = append(colors, Green)
		case "C":
			colors = append(colors, Colorless)
		default:
			return nil, fmt.Errorf("unsupported mana symbol: {%s}", symbol)
		}
	}
	return colors, nil
}

// SymbolString renders a color sequence back into symbol notation.
func SymbolString(colors []Color) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteByte('{')
		b.WriteString(string(c))
		b.WriteByte('}')
	}
	return b.String()
}
