package cards

import "fmt"

// Language identifies one of the languages a card line can be written in.
type Language int

const (
	English Language = iota
	Greek
)

// Abbreviation returns the token used for this language in card files.
func (l Language) Abbreviation() string {
	switch l {
	case English:
		return "en"
	case Greek:
		return "gr"
	default:
		return "??"
	}
}

// FullName returns the language's name, written in that language.
func (l Language) FullName() string {
	switch l {
	case English:
		return "English"
	case Greek:
		return "Ελληνικά"
	default:
		return "unknown"
	}
}

// ParseLanguage converts a card-file token ("en", "gr") into a Language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "en":
		return English, nil
	case "gr":
		return Greek, nil
	default:
		return 0, fmt.Errorf("unrecognized language %q", s)
	}
}

// Transliterate converts raw keyboard input into this language's script.
// English input passes through unchanged.
func (l Language) Transliterate(input string) string {
	out := make([]rune, 0, len(input))
	for _, c := range input {
		out = l.pushRune(c, out)
	}
	return string(out)
}

func (l Language) pushRune(c rune, out []rune) []rune {
	switch l {
	case Greek:
		return pushGreekRune(c, out)
	default:
		return append(out, c)
	}
}

// greekKeys maps a latin keystroke to its Greek letter in four variants:
// bare, with an acute accent (after `;`), with a diaeresis (after `:`),
// and with both (after `;:` or `:;`). Letters that take no accent repeat
// the bare form.
var greekKeys = map[rune][4]rune{
	'a': {'α', 'ά', 'α', 'α'},
	'b': {'β', 'β', 'β', 'β'},
	'g': {'γ', 'γ', 'γ', 'γ'},
	'd': {'δ', 'δ', 'δ', 'δ'},
	'e': {'ε', 'έ', 'ε', 'ε'},
	'z': {'ζ', 'ζ', 'ζ', 'ζ'},
	'h': {'η', 'ή', 'η', 'η'},
	'u': {'θ', 'θ', 'θ', 'θ'},
	'i': {'ι', 'ί', 'ϊ', 'ΐ'},
	'k': {'κ', 'κ', 'κ', 'κ'},
	'l': {'λ', 'λ', 'λ', 'λ'},
	'm': {'μ', 'μ', 'μ', 'μ'},
	'n': {'ν', 'ν', 'ν', 'ν'},
	'j': {'ξ', 'ξ', 'ξ', 'ξ'},
	'o': {'ο', 'ό', 'ο', 'ο'},
	'p': {'π', 'π', 'π', 'π'},
	'r': {'ρ', 'ρ', 'ρ', 'ρ'},
	's': {'σ', 'σ', 'σ', 'σ'},
	't': {'τ', 'τ', 'τ', 'τ'},
	'y': {'υ', 'ύ', 'υ', 'υ'},
	'f': {'φ', 'φ', 'φ', 'φ'},
	'x': {'χ', 'χ', 'χ', 'χ'},
	'c': {'ψ', 'ψ', 'ψ', 'ψ'},
	'v': {'ω', 'ώ', 'ω', 'ω'},
	'w': {'ς', 'ς', 'ς', 'ς'},
	'q': {';', ';', ';', ';'},

	'A': {'Α', 'Ά', 'Α', 'Α'},
	'B': {'Β', 'Β', 'Β', 'Β'},
	'G': {'Γ', 'Γ', 'Γ', 'Γ'},
	'D': {'Δ', 'Δ', 'Δ', 'Δ'},
	'E': {'Ε', 'Έ', 'Ε', 'Ε'},
	'Z': {'Ζ', 'Ζ', 'Ζ', 'Ζ'},
	'H': {'Η', 'Ή', 'Η', 'Η'},
	'U': {'Θ', 'Θ', 'Θ', 'Θ'},
	'I': {'Ι', 'Ί', 'Ϊ', 'Ι'},
	'K': {'Κ', 'Κ', 'Κ', 'Κ'},
	'L': {'Λ', 'Λ', 'Λ', 'Λ'},
	'M': {'Μ', 'Μ', 'Μ', 'Μ'},
	'N': {'Ν', 'Ν', 'Ν', 'Ν'},
	'J': {'Ξ', 'Ξ', 'Ξ', 'Ξ'},
	'O': {'Ο', 'Ό', 'Ο', 'Ο'},
	'P': {'Π', 'Π', 'Π', 'Π'},
	'R': {'Ρ', 'Ρ', 'Ρ', 'Ρ'},
	'S': {'Σ', 'Σ', 'Σ', 'Σ'},
	'T': {'Τ', 'Τ', 'Τ', 'Τ'},
	'Y': {'Υ', 'Ύ', 'Υ', 'Υ'},
	'F': {'Φ', 'Φ', 'Φ', 'Φ'},
	'X': {'Χ', 'Χ', 'Χ', 'Χ'},
	'C': {'Ψ', 'Ψ', 'Ψ', 'Ψ'},
	'V': {'Ω', 'Ώ', 'Ω', 'Ω'},
	'Q': {':', ':', ':', ':'},
}

// pushGreekRune appends the Greek form of keystroke c to out. A pending
// `;` marks an acute accent, a pending `:` a diaeresis; when the incoming
// letter has a distinct accented form, the marker runes are consumed.
func pushGreekRune(c rune, out []rune) []rune {
	vars, ok := greekKeys[c]
	if !ok {
		vars = [4]rune{c, c, c, c}
	}

	n := len(out)
	var semi, colon bool
	switch {
	case n >= 2 && ((out[n-2] == ':' && out[n-1] == ';') || (out[n-2] == ';' && out[n-1] == ':')):
		semi, colon = true, true
	case n >= 1 && out[n-1] == ':':
		colon = true
	case n >= 1 && out[n-1] == ';':
		semi = true
	}

	var consumed int
	var modified rune
	switch {
	case semi && colon && vars[0] != vars[3]:
		consumed, modified = 2, vars[3]
	case semi && vars[0] != vars[1]:
		consumed, modified = 1, vars[1]
	case colon && vars[0] != vars[2]:
		consumed, modified = 1, vars[2]
	default:
		consumed, modified = 0, vars[0]
	}

	return append(out[:n-consumed], modified)
}
