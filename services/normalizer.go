package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeForMatch bringt Text in die Vergleichsform der Suche:
// Unicode-NFC und Kleinschreibung. Anfrage und Heuhaufen laufen durch
// dieselbe Funktion.
func NormalizeForMatch(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// Tokenize zerlegt eine Suchanfrage in eindeutige Schlüsselwörter.
func Tokenize(query string) []string {
	fields := strings.Fields(NormalizeForMatch(strings.TrimSpace(query)))
	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}

// CollapseWhitespace ersetzt Folgen von Leerraum durch ein Leerzeichen.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Snippet schneidet einen Ausschnitt um das erste gefundene Token aus.
// Die Suche erfolgt runenweise, damit Positionen im Original gültig bleiben.
func Snippet(text string, tokens []string, radius int) string {
	runes := []rune(CollapseWhitespace(text))
	if len(runes) == 0 {
		return ""
	}
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}

	start, end := 0, len(runes)
	hit := -1
	for _, tok := range tokens {
		if idx := indexRunes(lowered, []rune(tok)); idx >= 0 {
			hit = idx
			break
		}
	}
	if hit >= 0 {
		start = max(0, hit-radius)
		end = min(len(runes), hit+radius)
	} else if end > 2*radius {
		end = 2 * radius
	}

	out := string(runes[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
