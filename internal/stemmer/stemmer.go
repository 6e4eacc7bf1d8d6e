// Package stemmer normalises tokens to linguistic stems. Cyrillic tokens go
// through a simplified Russian Porter stemmer, Latin tokens through a
// suffix-stripping rule table, and digit-only tokens pass through unchanged.
package stemmer

import (
	"strings"
	"unicode"
)

// Stem returns the normalised stem of a single lowercased token.
func Stem(term string) string {
	if term == "" {
		return term
	}
	if isAllDigits(term) {
		return term
	}
	if containsCyrillic(term) {
		return stemRussian(term)
	}
	return stemLatin(term)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsCyrillic(s string) bool {
	for _, r := range s {
		if (r >= 0x0400 && r <= 0x04FF) || (r >= 0x0500 && r <= 0x052F) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Russian
// ---------------------------------------------------------------------------

var russianVowels = map[rune]struct{}{
	'а': {}, 'е': {}, 'и': {}, 'о': {}, 'у': {},
	'ы': {}, 'э': {}, 'ю': {}, 'я': {},
}

// Suffix groups are ordered; the first match within a group wins.
var (
	ruPerfective = []string{"ившись", "ывшись", "ивши", "ывши", "ив", "ыв", "вшись", "вши", "в"}
	ruReflexive  = []string{"ся", "сь"}
	ruAdjective  = []string{
		"ими", "ыми", "его", "ого", "ему", "ому",
		"ее", "ие", "ые", "ое", "ей", "ий", "ый", "ой",
		"ем", "им", "ым", "ом", "их", "ых", "ую", "юю",
		"ая", "яя", "ою", "ею",
	}
	ruParticiple = []string{"ивш", "ывш", "ующ", "ем", "нн", "вш", "ющ", "щ"}
	ruVerb       = []string{
		"ейте", "уйте", "ила", "ыла", "ена", "ите", "или", "ыли",
		"ило", "ыло", "ено", "ует", "уют", "ены", "ить", "ыть", "ишь",
		"ете", "йте", "ешь", "нно",
		"ей", "уй", "ил", "ыл", "им", "ым", "ен", "ят", "ит", "ыт",
		"ую", "ла", "на", "ли", "ем", "ло", "но", "ет", "ют", "ны", "ть",
		"ю", "й", "л", "н",
	}
	ruNoun = []string{
		"иями", "ями", "ами", "ией", "иям", "ием", "иях", "ьях",
		"ев", "ов", "ие", "ье", "еи", "ии", "ей", "ой", "ий",
		"ям", "ем", "ам", "ом", "ах", "ях", "ию", "ью", "ия", "ья",
		"а", "е", "и", "й", "о", "у", "ы", "ь", "ю", "я",
	}
	ruSuperlative = []string{"ейше", "ейш"}
)

func stemRussian(token string) string {
	w := strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if r == 'ё' {
			return 'е'
		}
		return r
	}, token)

	// RV is the region after the first vowel; endings are only stripped
	// there, the prefix is untouchable.
	runes := []rune(w)
	rv := -1
	for i, r := range runes {
		if _, ok := russianVowels[r]; ok {
			rv = i + 1
			break
		}
	}
	if rv < 0 || rv >= len(runes) {
		return w
	}
	prefix := string(runes[:rv])
	r := string(runes[rv:])

	if trimmed, ok := trimAnySuffix(r, ruPerfective); ok {
		r = trimmed
	} else {
		r, _ = trimAnySuffix(r, ruReflexive)
		if trimmed, ok := trimAnySuffix(r, ruAdjective); ok {
			r = trimmed
			r, _ = trimAnySuffix(r, ruParticiple)
		} else if trimmed, ok := trimAnySuffix(r, ruVerb); ok {
			r = trimmed
		} else {
			r, _ = trimAnySuffix(r, ruNoun)
		}
	}

	r = strings.TrimSuffix(r, "и")
	r = trimDerivational(r)

	if strings.HasSuffix(r, "ь") {
		r = strings.TrimSuffix(r, "ь")
	} else {
		r, _ = trimAnySuffix(r, ruSuperlative)
		if strings.HasSuffix(r, "нн") {
			r = strings.TrimSuffix(r, "н")
		}
	}

	return prefix + r
}

// trimDerivational strips -ость/-ост when a vowel remains before the suffix,
// so bare roots like "ост" survive.
func trimDerivational(r string) string {
	for _, suf := range []string{"ость", "ост"} {
		if !strings.HasSuffix(r, suf) {
			continue
		}
		head := []rune(strings.TrimSuffix(r, suf))
		for _, c := range head {
			if _, ok := russianVowels[c]; ok {
				return string(head)
			}
		}
		return r
	}
	return r
}

func trimAnySuffix(s string, suffixes []string) (string, bool) {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return strings.TrimSuffix(s, suf), true
		}
	}
	return s, false
}

// ---------------------------------------------------------------------------
// Latin
// ---------------------------------------------------------------------------

var latinRules = []struct {
	suffix      string
	replacement string
	minLen      int
}{
	{"ational", "ate", 2},
	{"tional", "tion", 2},
	{"encies", "ence", 2},
	{"ances", "ance", 2},
	{"ments", "ment", 2},
	{"izing", "ize", 2},
	{"ating", "ate", 2},
	{"iness", "y", 2},
	{"ously", "ous", 2},
	{"ively", "ive", 2},
	{"tion", "t", 3},
	{"sion", "s", 3},
	{"ying", "y", 2},
	{"ling", "l", 3},
	{"ies", "y", 2},
	{"ing", "", 3},
	{"ers", "er", 2},
	{"est", "", 3},
	{"ful", "", 3},
	{"ous", "", 3},
	{"ble", "", 3},
	{"ss", "ss", 2},
	{"ed", "", 3},
	{"er", "", 3},
	{"ly", "", 3},
	{"es", "", 3},
	{"s", "", 3},
}

func stemLatin(word string) string {
	for _, rule := range latinRules {
		if strings.HasSuffix(word, rule.suffix) {
			stemmed := word[:len(word)-len(rule.suffix)] + rule.replacement
			if len(stemmed) >= rule.minLen {
				return stemmed
			}
		}
	}
	return word
}
