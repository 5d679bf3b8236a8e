package oracle

import (
	"strconv"
	"strings"
)

// TokenDescriptor is the parsed shape of a token-creation clause, e.g.
// "1/1 white soldier creature" with optional trailing abilities.
type TokenDescriptor struct {
	Power      int
	Toughness  int
	Colors     []string
	Subtypes   []string
	ExtraTypes []string
	Abilities  []string
	Tapped     bool
	Name       string
}

var tokenColorWords = map[string]bool{
	"white": true, "blue": true, "black": true,
	"red": true, "green": true, "colorless": true,
}

var tokenExtraTypeWords = map[string]bool{
	"artifact": true, "enchantment": true, "legendary": true,
}

// parseTokenDescriptor reads the clause between the count and "token". The
// leading P/T marks the clause as a creature token; clauses without one do
// not parse, letting the caller fall through to manual resolution.
func parseTokenDescriptor(clause, abilities string, tapped bool) (TokenDescriptor, bool) {
	fields := strings.Fields(strings.TrimSpace(clause))
	if len(fields) == 0 {
		return TokenDescriptor{}, false
	}

	d := TokenDescriptor{Tapped: tapped}

	// Leading P/T like "2/2".
	pt := strings.SplitN(fields[0], "/", 2)
	if len(pt) != 2 {
		return TokenDescriptor{}, false
	}
	power, err1 := strconv.Atoi(pt[0])
	toughness, err2 := strconv.Atoi(pt[1])
	if err1 != nil || err2 != nil {
		return TokenDescriptor{}, false
	}
	d.Power, d.Toughness = power, toughness

	for _, word := range fields[1:] {
		switch {
		case tokenColorWords[word]:
			d.Colors = append(d.Colors, word)
		case tokenExtraTypeWords[word]:
			d.ExtraTypes = append(d.ExtraTypes, word)
		case word == "creature":
			// Implied by the leading P/T; some texts spell it out.
		default:
			d.Subtypes = append(d.Subtypes, word)
		}
	}

	if abilities != "" {
		d.Abilities = splitAbilityList(abilities)
	}

	d.Name = tokenName(d.Subtypes)
	return d, true
}

// splitAbilityList splits "flying and haste" / "flying, trample, and haste"
// into individual abilities.
func splitAbilityList(s string) []string {
	s = strings.ReplaceAll(s, ", and ", ", ")
	s = strings.ReplaceAll(s, " and ", ", ")
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func tokenName(subtypes []string) string {
	if len(subtypes) == 0 {
		return "Token"
	}
	words := make([]string, len(subtypes))
	for i, s := range subtypes {
		if s == "" {
			continue
		}
		words[i] = strings.ToUpper(s[:1]) + s[1:]
	}
	return strings.Join(words, " ")
}
