package analyzer

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/zombar/claritylens/internal/models"
)

var questionBanks = map[string][]string{
	"high_emotion": {
		"This text uses strong emotional language. What would the argument look like stripped of emotional framing?",
		"If you removed all emotional words, would the core point still be compelling?",
		"Who benefits from you feeling the emotions this text evokes?",
		"Is the emotional reaction this triggers proportional to the evidence presented?",
	},
	"high_bias": {
		"What perspective is missing or underrepresented here?",
		"Whose interests are served by this particular framing?",
		"If the opposing side wrote about this topic, what different language would they use?",
		"Which facts are emphasized and which might be omitted to support this narrative?",
	},
	"fallacies_detected": {
		"Can you identify where the reasoning breaks down?",
		"What evidence would actually be needed to support the claims being made?",
		"Could the conclusion still be true even if the reasoning is flawed?",
		"What alternative explanations exist that the author doesn't consider?",
	},
	"strong_claims": {
		"What specific evidence would you need to verify these claims?",
		"Are the claims here falsifiable? How would you test them?",
		"What would change your mind about the claims in this text?",
		"How would a domain expert evaluate these assertions?",
	},
	"low_credibility": {
		"Can you verify these claims with more established sources?",
		"Is this source trying to inform you or persuade you?",
		"What is the funding model of this publication, and how might it influence content?",
		"Would you trust this source for important decisions?",
	},
	"opinion_heavy": {
		"What facts would you need to form your own independent view?",
		"Can you separate the author's opinions from any factual claims?",
		"If someone you disagreed with made the same argument, would you evaluate it differently?",
	},
	"general": {
		"Before sharing this, ask: Is it true? Is it fair? Is it necessary?",
		"What is the author's purpose — to inform, persuade, entertain, or provoke?",
		"What questions does this text leave unanswered?",
		"How does this fit with what you already know? Does it confirm or challenge existing beliefs?",
	},
}

// ReflectionGenerator selects Socratic prompts conditioned on which
// analysis signals fired. Question choice within a bank is randomized; a
// fixed seed makes the selection reproducible.
type ReflectionGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewReflectionGenerator returns a generator whose question selection is
// deterministic for a given seed.
func NewReflectionGenerator(seed int64) *ReflectionGenerator {
	return &ReflectionGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NewReflectionGeneratorEntropy returns a generator seeded from the clock.
func NewReflectionGeneratorEntropy() *ReflectionGenerator {
	return NewReflectionGenerator(time.Now().UnixNano())
}

func (g *ReflectionGenerator) pick(bank string, n int) []string {
	src := questionBanks[bank]
	shuffled := make([]string, len(src))
	copy(shuffled, src)
	g.mu.Lock()
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	g.mu.Unlock()
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// Generate builds the reflection bundle from whichever component results
// are present. Any field of results may be nil.
func (g *ReflectionGenerator) Generate(results *models.AnalysisResults) *models.ReflectionBundle {
	if results == nil {
		results = &models.AnalysisResults{}
	}

	var questions []string
	var categories []string
	fired := make(map[string]bool)
	add := func(category string, n int) {
		categories = append(categories, category)
		fired[category] = true
		questions = append(questions, g.pick(category, n)...)
	}

	if results.Sentiment != nil && results.Sentiment.EmotionalIntensity > 40 {
		add("high_emotion", 2)
	}
	if results.Bias != nil && results.Bias.BiasScore > 30 {
		add("high_bias", 2)
	}
	if results.Fallacies != nil && results.Fallacies.TotalMatches > 0 {
		add("fallacies_detected", 2)
	}
	if results.Claims != nil && results.Claims.Counts[models.ClaimStrong] > 2 {
		add("strong_claims", 1)
	}
	if results.Source != nil && results.Source.Score < 40 {
		add("low_credibility", 2)
	}
	if results.Claims != nil && results.Claims.Distribution.OpinionPercent > 50 {
		add("opinion_heavy", 1)
	}
	questions = append(questions, g.pick("general", 2)...)

	var parts []string
	if fired["high_emotion"] && fired["high_bias"] {
		parts = append(parts, "This content combines emotional language with bias markers — often indicating persuasive rather than informational intent.")
	}
	if fired["fallacies_detected"] {
		parts = append(parts, fmt.Sprintf("%d potential logical fallacy pattern(s) detected.", results.Fallacies.TotalMatches))
	}
	if fired["low_credibility"] {
		parts = append(parts, "Source credibility signals suggest caution. Cross-reference key claims.")
	}
	if len(parts) == 0 {
		parts = append(parts, "Consider what perspective might be missing and whether evidence supports the conclusions.")
	}

	if categories == nil {
		categories = []string{}
	}

	return &models.ReflectionBundle{
		Questions:  capStrings(uniqueStrings(questions), 7),
		Categories: categories,
		Synthesis:  strings.Join(parts, " "),
	}
}
