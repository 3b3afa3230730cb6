package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

var opinionMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(i think|i believe|i feel|in my (?:opinion|view|estimation)|it seems to me)\b`),
	regexp.MustCompile(`(?i)\b(we think|we believe|our view is|it (?:seems|appears) (?:that|to))\b`),
	regexp.MustCompile(`(?i)\b(best|worst|greatest|most important|least important|overrated|underrated)\b`),
	regexp.MustCompile(`(?i)\b(beautiful|ugly|terrible|wonderful|amazing|awful|horrible|brilliant|ridiculous|absurd)\b`),
	regexp.MustCompile(`(?i)\b(obviously|clearly|undoubtedly|certainly|of course|needless to say)\b`),
	regexp.MustCompile(`(?i)\b(sadly|fortunately|unfortunately|thankfully|hopefully|regrettably)\b`),
	regexp.MustCompile(`(?i)\b(unacceptable|outrageous|nonsensical|ludicrous|preposterous)\b`),
	regexp.MustCompile(`(?i)\b(wrong|right|fair|unfair|just|unjust|moral|immoral|ethical|unethical)\b`),
}

// Prescriptive verbs count as opinion markers except in the copular
// "should be" form, which reads as prediction rather than judgment. The
// following word is checked separately since the pattern cannot express
// the exclusion directly.
var prescriptiveRe = regexp.MustCompile(`(?i)\b(should|ought to|must|need to) (\w+)`)

var factualMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d[\d,.]*\s*(?:percent|%|million|billion|trillion|thousand|hundred|km|miles?|kg|lbs?)\b`),
	regexp.MustCompile(`(?i)\b(?:according to|based on|data (?:shows?|indicates?)|research (?:shows?|found|indicates?))\b`),
	regexp.MustCompile(`(?i)\b(?:in \d{4}|on \w+ \d{1,2},? \d{4}|since \d{4}|from \d{4} to \d{4})\b`),
	regexp.MustCompile(`(?i)\b(?:located in|headquartered in|founded in|established in|born (?:in|on))\b`),
	regexp.MustCompile(`(?i)\b(?:measured|calculated|recorded|documented|published in|appeared in)\b`),
	regexp.MustCompile(`(?i)\b(?:increased|decreased|rose|fell|grew|shrank|declined) (?:by|from|to)\b`),
	regexp.MustCompile(`(?i)\b(?:population|GDP|revenue|profit|temperature|rate|index)\b`),
}

var claimMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:proves?|evidence (?:shows?|demonstrates?)|confirms?|establishes?|demonstrates?)\b`),
	regexp.MustCompile(`(?i)\bis the (?:cause|reason|result|solution|answer|key|only)\b`),
	regexp.MustCompile(`(?i)\bwill (?:cause|lead to|result in|create|destroy|prevent|guarantee)\b`),
	regexp.MustCompile(`(?i)\b(?:the fact is|the truth is|the reality is|make no mistake|let me be clear)\b`),
	regexp.MustCompile(`(?i)\b(?:guaranteed|certain to|inevitable|impossible|undeniable|irrefutable)\b`),
	regexp.MustCompile(`(?i)\bthe (?:biggest|greatest|worst|most serious|primary|main) (?:threat|problem|issue|cause)\b`),
}

var hedgedMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:may|might|could|possibly|potentially|arguably)\b`),
	regexp.MustCompile(`(?i)\b(?:suggests?|indicates?|implies?|appears?|seems?)\b`),
	regexp.MustCompile(`(?i)\b(?:likely|unlikely|probable|improbable|plausible)\b`),
	regexp.MustCompile(`(?i)\b(?:estimated|approximate(?:ly)?|roughly|about|around)\b`),
	regexp.MustCompile(`(?i)\b(?:tends? to|generally|typically|usually|often)\b`),
}

var rhetoricalRe = regexp.MustCompile(`(?i)\b(isn't it|don't you|wouldn't you|can't we|shouldn't we|how can anyone|who could possibly)\b`)

// ClaimClassifier labels sentences as opinion, factual statement or
// unsupported claim using linguistic markers. Stateless and safe for
// concurrent use.
type ClaimClassifier struct{}

// NewClaimClassifier constructs a classifier over the built-in marker
// patterns.
func NewClaimClassifier() *ClaimClassifier {
	return &ClaimClassifier{}
}

// Analyze classifies each sentence and summarizes the distribution.
func (c *ClaimClassifier) Analyze(text string) *models.ClaimReport {
	if len(strings.TrimSpace(text)) < 20 {
		return emptyClaims()
	}

	var sentences []string
	for _, s := range splitSentences(text) {
		if len(strings.TrimSpace(s)) > 15 {
			sentences = append(sentences, s)
		}
	}

	var results []models.ClaimClassification
	for _, s := range sentences {
		if r := c.classifySentence(s); r != nil {
			results = append(results, *r)
		}
	}

	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Classification]++
	}

	total := len(results)
	denom := total
	if denom == 0 {
		denom = 1
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(denom) * 100))
	}
	opinionPct := pct(counts[models.ClaimOpinion])
	claimPct := pct(counts[models.ClaimStrong] + counts[models.ClaimHedged])
	factualPct := pct(counts[models.ClaimFactual] + counts[models.ClaimHedgedFact])

	var contentType string
	switch {
	case opinionPct > 50:
		contentType = "Opinion / Editorial"
	case factualPct > 50:
		contentType = "Informational / Factual"
	case claimPct > 40:
		contentType = "Argumentative / Persuasive"
	default:
		contentType = "Mixed Content"
	}

	capped := results
	if len(capped) > 30 {
		capped = capped[:30]
	}

	return &models.ClaimReport{
		Classifications: capped,
		Counts:          counts,
		Distribution: models.ClaimDistribution{
			OpinionPercent: opinionPct,
			ClaimPercent:   claimPct,
			FactualPercent: factualPct,
		},
		ContentType:     contentType,
		TotalSentences:  len(sentences),
		TotalClassified: total,
	}
}

func (c *ClaimClassifier) classifySentence(sentence string) *models.ClaimClassification {
	s := strings.TrimSpace(sentence)
	if len(s) < 15 || len(strings.Fields(s)) < 4 {
		return nil
	}

	var markers []models.MarkerMatch
	countMatches := func(patterns []*regexp.Regexp, typ string) int {
		total := 0
		for _, p := range patterns {
			for _, m := range p.FindAllString(s, -1) {
				total++
				markers = append(markers, models.MarkerMatch{Text: strings.TrimSpace(m), Type: typ})
			}
		}
		return total
	}

	opinionScore := countMatches(opinionMarkerRes, "opinion")
	for _, groups := range prescriptiveRe.FindAllStringSubmatch(s, -1) {
		if strings.EqualFold(groups[2], "be") {
			continue
		}
		opinionScore++
		markers = append(markers, models.MarkerMatch{Text: groups[1], Type: "opinion"})
	}
	opinionScore *= 2
	factualScore := countMatches(factualMarkerRes, "factual") * 2
	claimScore := countMatches(claimMarkerRes, "claim") * 2
	hedgedScore := countMatches(hedgedMarkerRes, "hedged")

	if strings.HasSuffix(strings.TrimRight(s, " \t"), "?") {
		if rhetoricalRe.MatchString(s) {
			return &models.ClaimClassification{
				Text:           truncateSentence(s),
				Classification: models.ClaimRhetoricalQuestion,
				Confidence:     0.65,
				Markers:        dedupMarkers(markers),
				Explanation:    "Rhetorical question — asserts a position disguised as inquiry.",
			}
		}
		return nil
	}

	if opinionScore+factualScore+claimScore+hedgedScore == 0 {
		return nil
	}

	maxType, maxVal := "opinion", opinionScore
	if factualScore > maxVal {
		maxType, maxVal = "factual", factualScore
	}
	if claimScore > maxVal {
		maxType, maxVal = "claim", claimScore
	}

	totalSignal := opinionScore + factualScore + claimScore
	dominance := 0.0
	if totalSignal > 0 {
		dominance = float64(maxVal) / float64(totalSignal)
	}

	conf := func(score int) float64 {
		c := 0.35 + dominance*0.4 + math.Min(float64(score)*0.04, 0.2)
		return round2(math.Min(0.92, c))
	}

	var classification, explanation string
	var confidence float64
	switch maxType {
	case "opinion":
		classification = models.ClaimOpinion
		explanation = "Contains subjective language or value judgments."
		confidence = conf(opinionScore)
	case "factual":
		if hedgedScore > 0 {
			classification = models.ClaimHedgedFact
			explanation = "Presents data with appropriate qualification."
		} else {
			classification = models.ClaimFactual
			explanation = "Presents verifiable information — consider checking sources."
		}
		confidence = conf(factualScore)
	default:
		if hedgedScore > 0 {
			classification = models.ClaimHedged
			explanation = "Makes an assertion with some qualification."
		} else {
			classification = models.ClaimStrong
			explanation = "Makes a strong assertion — verify supporting evidence."
		}
		confidence = conf(claimScore)
	}

	return &models.ClaimClassification{
		Text:           truncateSentence(s),
		Classification: classification,
		Confidence:     confidence,
		Markers:        dedupMarkers(markers),
		Explanation:    explanation,
	}
}

func truncateSentence(s string) string {
	r := []rune(s)
	if len(r) > 120 {
		return string(r[:120]) + "…"
	}
	return s
}

func dedupMarkers(markers []models.MarkerMatch) []models.MarkerMatch {
	seen := make(map[string]bool)
	out := make([]models.MarkerMatch, 0, len(markers))
	for _, m := range markers {
		k := strings.ToLower(m.Text)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
		if len(out) == 5 {
			break
		}
	}
	return out
}

func emptyClaims() *models.ClaimReport {
	return &models.ClaimReport{
		Classifications: []models.ClaimClassification{},
		Counts:          map[string]int{},
		ContentType:     "N/A",
	}
}
