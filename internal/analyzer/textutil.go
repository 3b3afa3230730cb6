package analyzer

import (
	"math"
	"strings"
)

// tokenize lowercases text, splits on whitespace and strips leading and
// trailing non-letter characters from each token, keeping internal
// apostrophes so contractions survive.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	lowered = strings.NewReplacer("‘", "'", "’", "'").Replace(lowered)
	fields := strings.Fields(lowered)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !(r >= 'a' && r <= 'z') && r != '\''
		})
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// stripNonAlpha removes everything except lowercase letters.
func stripNonAlpha(w string) string {
	var b strings.Builder
	for _, r := range w {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitSentences splits text after terminal punctuation followed by
// whitespace, dropping fragments shorter than three characters.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Split only when whitespace follows, so "3.5" stays intact.
			if i+1 < len(runes) && isSpace(runes[i+1]) {
				s := strings.TrimSpace(cur.String())
				if len(s) > 2 {
					sentences = append(sentences, s)
				}
				cur.Reset()
				for i+1 < len(runes) && isSpace(runes[i+1]) {
					i++
				}
			}
		}
	}
	if s := strings.TrimSpace(cur.String()); len(s) > 2 {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// uniqueStrings deduplicates while preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// capStrings returns at most n elements of in.
func capStrings(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Common words whose vowel-group count is wrong enough to matter.
var syllableExceptions = map[string]int{
	"area": 3, "idea": 3, "real": 2, "realize": 3, "create": 2,
	"science": 2, "every": 3, "favorite": 3, "chocolate": 3, "camera": 3,
	"different": 3, "evening": 3, "interest": 3, "beautiful": 3,
	"business": 2, "average": 3, "family": 3, "several": 3,
	"basically": 4, "generally": 4, "literally": 4, "naturally": 4,
	"especially": 4, "occasionally": 5, "immediately": 5,
	"unfortunately": 5, "comfortable": 4, "temperature": 4,
	"vegetable": 4, "restaurant": 3, "interesting": 4, "experience": 4,
	"important": 3, "everything": 3,
}

func isVowelLetter(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// countSyllables estimates syllables by counting vowel groups after
// stripping a trailing silent e, with corrections for -le and -ed endings.
func countSyllables(word string) int {
	w := stripNonAlpha(strings.ToLower(word))
	if len(w) <= 2 {
		return 1
	}
	if n, ok := syllableExceptions[w]; ok {
		return n
	}

	// Drop a trailing silent e unless preceded by l, e, a or s.
	trimmed := w
	if len(w) >= 2 && w[len(w)-1] == 'e' {
		switch w[len(w)-2] {
		case 'l', 'e', 'a', 's':
		default:
			trimmed = w[:len(w)-1]
		}
	}
	if trimmed == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(trimmed); i++ {
		v := isVowelLetter(trimmed[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count == 0 {
		count = 1
	}

	// -le preceded by a consonant adds a syllable ("table").
	if len(w) >= 3 && strings.HasSuffix(w, "le") && !isAEIOU(w[len(w)-3]) && !strings.HasSuffix(trimmed, "le") {
		count++
	}
	// -ed preceded by a consonant other than t or d is silent ("walked").
	if len(w) >= 3 && strings.HasSuffix(w, "ed") {
		c := w[len(w)-3]
		if !isAEIOU(c) && c != 't' && c != 'd' {
			if count > 1 {
				count--
			}
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isAEIOU(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
