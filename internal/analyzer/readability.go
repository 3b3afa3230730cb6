package analyzer

import (
	"math"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

// ReadabilityScorer computes the standard published readability formulas:
// Flesch Reading Ease, Flesch-Kincaid, Gunning Fog, Coleman-Liau, SMOG and
// the Automated Readability Index.
type ReadabilityScorer struct{}

// NewReadabilityScorer constructs a scorer.
func NewReadabilityScorer() *ReadabilityScorer {
	return &ReadabilityScorer{}
}

func splitReadabilityWords(text string) []string {
	var words []string
	for _, f := range strings.Fields(text) {
		if stripNonAlphaFold(f) != "" {
			words = append(words, f)
		}
	}
	return words
}

// stripNonAlphaFold removes everything except ASCII letters of either case.
func stripNonAlphaFold(w string) string {
	var b strings.Builder
	for _, r := range w {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitReadabilitySentences(text string) []string {
	var out []string
	for _, s := range terminalPunctRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) > 2 && len(strings.Fields(s)) >= 2 {
			out = append(out, s)
		}
	}
	return out
}

func isComplexWord(word string) bool {
	clean := strings.ToLower(stripNonAlphaFold(word))
	if len(clean) < 4 {
		return false
	}
	return countSyllables(clean) >= 3
}

// Analyze computes all readability metrics for text.
func (r *ReadabilityScorer) Analyze(text string) *models.ReadabilityMetrics {
	if len(strings.TrimSpace(text)) < 10 {
		return emptyReadability()
	}

	sentences := splitReadabilitySentences(text)
	words := splitReadabilityWords(text)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	wordCount := len(words)
	if wordCount < 3 {
		return emptyReadability()
	}

	totalSyllables := 0
	letterCount := 0
	var complexWords []string
	for _, w := range words {
		totalSyllables += countSyllables(w)
		letterCount += len(stripNonAlphaFold(w))
		if isComplexWord(w) {
			complexWords = append(complexWords, w)
		}
	}
	complexCount := len(complexWords)

	avgWPS := float64(wordCount) / float64(sentenceCount)
	avgSPW := float64(totalSyllables) / float64(wordCount)
	pctComplex := float64(complexCount) / float64(wordCount) * 100

	fleschEase := math.Max(0, math.Min(100, round1(206.835-1.015*avgWPS-84.6*avgSPW)))
	fk := math.Max(0, round1(0.39*avgWPS+11.8*avgSPW-15.59))
	gf := math.Max(0, round1(0.4*(avgWPS+pctComplex)))

	l := float64(letterCount) / float64(wordCount) * 100
	s := float64(sentenceCount) / float64(wordCount) * 100
	cl := math.Max(0, round1(0.0588*l-0.296*s-15.8))

	// SMOG is unreliable on very short texts, so fall back to
	// Flesch-Kincaid below three sentences.
	smog := fk
	if sentenceCount >= 3 {
		smog = math.Max(0, round1(1.0430*math.Sqrt(float64(complexCount)*(30/float64(sentenceCount)))+3.1291))
	}

	ari := math.Max(0, round1(4.71*(float64(letterCount)/float64(wordCount))+0.5*avgWPS-21.43))

	composite := round1((fk + gf + cl + smog + ari) / 5)

	var level string
	switch {
	case composite <= 5:
		level = "Elementary"
	case composite <= 8:
		level = "Middle School"
	case composite <= 12:
		level = "High School"
	case composite <= 16:
		level = "College"
	default:
		level = "Graduate / Professional"
	}

	readingTime := int(math.Max(1, math.Round(float64(wordCount)/238)))

	unique := make(map[string]bool, wordCount)
	for _, w := range words {
		unique[strings.ToLower(stripNonAlphaFold(w))] = true
	}
	diversity := int(math.Round(float64(len(unique)) / float64(wordCount) * 100))

	lengths := make([]int, len(sentences))
	sum := 0
	for i, sent := range sentences {
		lengths[i] = len(splitReadabilityWords(sent))
		sum += lengths[i]
	}
	variance := 0.0
	long, short := 0, 0
	if len(lengths) > 0 {
		mean := float64(sum) / float64(len(lengths))
		for _, n := range lengths {
			variance += math.Pow(float64(n)-mean, 2)
			if n > 25 {
				long++
			}
			if n < 8 {
				short++
			}
		}
		variance /= float64(len(lengths))
	}

	var complexClean []string
	for _, w := range complexWords {
		complexClean = append(complexClean, strings.ToLower(stripNonAlphaFold(w)))
	}

	return &models.ReadabilityMetrics{
		Scores: models.ReadabilityScores{
			FleschEase:     fleschEase,
			FleschKincaid:  fk,
			GunningFog:     gf,
			ColemanLiau:    cl,
			SMOG:           smog,
			ARI:            ari,
			CompositeGrade: composite,
		},
		LevelLabel: level,
		Stats: models.ReadabilityStats{
			WordCount:           wordCount,
			SentenceCount:       sentenceCount,
			AvgWordsPerSentence: round1(avgWPS),
			AvgSyllablesPerWord: round2(avgSPW),
			ComplexWordCount:    complexCount,
			ComplexWordPercent:  round1(pctComplex),
			VocabularyDiversity: diversity,
			ReadingTimeMinutes:  readingTime,
		},
		SentenceStructure: models.SentenceStructure{
			LongSentences:  long,
			ShortSentences: short,
			Variance:       round1(variance),
		},
		ComplexWords: capStrings(uniqueStrings(complexClean), 20),
	}
}

func emptyReadability() *models.ReadabilityMetrics {
	return &models.ReadabilityMetrics{
		LevelLabel:   "N/A",
		ComplexWords: []string{},
	}
}
