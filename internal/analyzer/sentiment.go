package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

// emotionalPattern is a compiled emotional-appeal phrase family.
type emotionalPattern struct {
	re    *regexp.Regexp
	label string
}

var emotionalPatterns = []emotionalPattern{
	{regexp.MustCompile(`(?i)\bthink of the (children|kids|families|elderly|veterans)\b`), "Appeal to emotion (vulnerable groups)"},
	{regexp.MustCompile(`(?i)\b(everyone knows|everybody knows|as we all know|common sense)\b`), "Appeal to common belief"},
	{regexp.MustCompile(`(?i)\b(no one can deny|undeniable fact|unquestionable|beyond dispute)\b`), "Certainty assertion"},
	{regexp.MustCompile(`(?i)\b(wake up|open your eyes|sheeple|kool.?aid)\b`), "Condescension / dismissiveness"},
	{regexp.MustCompile(`(?i)\b(real americans?|true patriots?|real people|ordinary people)\b`), "Identity/in-group appeal"},
	{regexp.MustCompile(`(?i)\b(they don't want you to know|secret(?:ly)?|hidden truth|cover[\s-]?up)\b`), "Conspiracy framing"},
	{regexp.MustCompile(`(?i)\b(where does it end|what'?s next|slippery slope|thin end of the wedge)\b`), "Slippery slope language"},
	{regexp.MustCompile(`(?i)\b(fight back|take back|stand up against|war on|battle for)\b`), "Militaristic framing"},
	{regexp.MustCompile(`(?i)\b(destroy|annihilate|obliterate|eradicate|wipe out|crush)\b`), "Hyperbolic destruction language"},
	{regexp.MustCompile(`(?i)\b(crisis|emergency|catastrophe|nightmare|apocalypse|existential threat)\b`), "Crisis/urgency framing"},
}

// SentimentAnalyzer scores emotional tone against a word lexicon with
// negation and intensifier handling. Safe for concurrent use.
type SentimentAnalyzer struct {
	lexicon *Lexicon
}

// NewSentimentAnalyzer builds an analyzer over the given lexicon, falling
// back to the default lexicon when nil.
func NewSentimentAnalyzer(lex *Lexicon) *SentimentAnalyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &SentimentAnalyzer{lexicon: lex}
}

type tokenScores struct {
	positiveScore float64
	negativeScore float64
	positiveWords []string
	negativeWords []string
	intensifiers  []string
	intensifierN  int
	hedges        []string
	hedgeN        int
}

func (a *SentimentAnalyzer) scoreTokens(tokens []string) tokenScores {
	var sc tokenScores
	seenIntensifier := make(map[string]bool)
	seenHedge := make(map[string]bool)

	for i, tok := range tokens {
		clean := stripNonAlpha(tok)

		if a.lexicon.Hedges[clean] {
			sc.hedgeN++
			if !seenHedge[clean] {
				seenHedge[clean] = true
				sc.hedges = append(sc.hedges, clean)
			}
		}
		if _, ok := a.lexicon.Intensifiers[clean]; ok {
			sc.intensifierN++
			if !seenIntensifier[clean] {
				seenIntensifier[clean] = true
				sc.intensifiers = append(sc.intensifiers, clean)
			}
		}

		score, ok := a.lexicon.Scores[clean]
		if !ok || score == 0 {
			continue
		}

		// Negators in the preceding three tokens flip polarity.
		negated := false
		for j := i - 3; j < i; j++ {
			if j < 0 {
				continue
			}
			if a.lexicon.Negators[strings.Map(keepAlphaApostrophe, tokens[j])] {
				negated = true
				break
			}
		}

		multiplier := 1.0
		if i > 0 {
			if m, ok := a.lexicon.Intensifiers[stripNonAlpha(tokens[i-1])]; ok {
				multiplier = m
			}
		}

		if negated {
			score = -score * 0.75
		}
		score *= multiplier

		if score > 0 {
			sc.positiveScore += score
			sc.positiveWords = append(sc.positiveWords, clean)
		} else if score < 0 {
			sc.negativeScore += math.Abs(score)
			sc.negativeWords = append(sc.negativeWords, clean)
		}
	}

	sc.positiveScore = round2(sc.positiveScore)
	sc.negativeScore = round2(sc.negativeScore)
	sc.positiveWords = uniqueStrings(sc.positiveWords)
	sc.negativeWords = uniqueStrings(sc.negativeWords)
	return sc
}

func keepAlphaApostrophe(r rune) rune {
	if (r >= 'a' && r <= 'z') || r == '\'' {
		return r
	}
	return -1
}

// Analyze scores the emotional tone of text.
func (a *SentimentAnalyzer) Analyze(text string) *models.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return emptySentiment()
	}
	tokens := tokenize(text)
	wordCount := len(tokens)
	if wordCount == 0 {
		return emptySentiment()
	}

	sc := a.scoreTokens(tokens)

	var patterns []models.PatternMatch
	patternTotal := 0
	for _, p := range emotionalPatterns {
		matches := p.re.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		trimmed := make([]string, len(matches))
		for i, m := range matches {
			trimmed[i] = strings.TrimSpace(m)
		}
		patterns = append(patterns, models.PatternMatch{
			Label:    p.label,
			Count:    len(matches),
			Examples: capStrings(uniqueStrings(trimmed), 3),
		})
		patternTotal += len(matches)
	}

	netScore := sc.positiveScore - sc.negativeScore
	normalized := netScore / math.Sqrt(float64(wordCount))

	emotionalWords := len(sc.positiveWords) + len(sc.negativeWords)
	emotionalDensity := float64(emotionalWords) / float64(wordCount) * 100
	intensifierDensity := float64(sc.intensifierN) / float64(wordCount) * 100

	rawIntensity := emotionalDensity*2.5 + intensifierDensity*4 + float64(patternTotal)*6
	intensity := clampInt(int(math.Round(rawIntensity)), 0, 100)
	objectivity := clampInt(100-intensity, 0, 100)

	return &models.SentimentResult{
		ToneLabel:          toneLabel(normalized),
		NormalizedScore:    round2(normalized),
		PositiveScore:      sc.positiveScore,
		NegativeScore:      sc.negativeScore,
		NetScore:           round2(netScore),
		EmotionalIntensity: intensity,
		Objectivity:        objectivity,
		PositiveWords:      capStrings(sc.positiveWords, 15),
		NegativeWords:      capStrings(sc.negativeWords, 15),
		Intensifiers: models.WordTally{
			Count:   sc.intensifierN,
			Density: round2(intensifierDensity),
			Words:   capStrings(sc.intensifiers, 10),
		},
		Hedges: models.WordTally{
			Count: sc.hedgeN,
			Words: capStrings(sc.hedges, 10),
		},
		EmotionalPatterns: patterns,
		WordCount:         wordCount,
	}
}

func toneLabel(ns float64) string {
	switch {
	case math.Abs(ns) < 0.2:
		return "Neutral"
	case ns >= 0.2 && ns < 0.7:
		return "Mildly Positive"
	case ns >= 0.7 && ns < 1.5:
		return "Positive"
	case ns >= 1.5:
		return "Strongly Positive"
	case ns <= -0.2 && ns > -0.7:
		return "Mildly Negative"
	case ns <= -0.7 && ns > -1.5:
		return "Negative"
	default:
		return "Strongly Negative"
	}
}

func emptySentiment() *models.SentimentResult {
	return &models.SentimentResult{
		ToneLabel:   "Neutral",
		Objectivity: 100,
		Intensifiers: models.WordTally{
			Words: []string{},
		},
		Hedges: models.WordTally{
			Words: []string{},
		},
		PositiveWords: []string{},
		NegativeWords: []string{},
	}
}
