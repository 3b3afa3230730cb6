package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zombar/claritylens/internal/models"
)

func questionInBank(bank, q string) bool {
	for _, b := range questionBanks[bank] {
		if b == q {
			return true
		}
	}
	return false
}

func TestReflectionNilResults(t *testing.T) {
	g := NewReflectionGenerator(1)

	b := g.Generate(nil)
	if len(b.Questions) != 2 {
		t.Fatalf("got %d questions, want 2 general", len(b.Questions))
	}
	for _, q := range b.Questions {
		if !questionInBank("general", q) {
			t.Errorf("question %q not from the general bank", q)
		}
	}
	if len(b.Categories) != 0 {
		t.Errorf("categories = %v, want empty", b.Categories)
	}
	if b.Synthesis != "Consider what perspective might be missing and whether evidence supports the conclusions." {
		t.Errorf("synthesis = %q", b.Synthesis)
	}
}

func TestReflectionEmotionAndBias(t *testing.T) {
	g := NewReflectionGenerator(1)

	b := g.Generate(&models.AnalysisResults{
		Sentiment: &models.SentimentResult{EmotionalIntensity: 55},
		Bias:      &models.BiasResult{BiasScore: 40},
	})

	want := []string{"high_emotion", "high_bias"}
	if !reflect.DeepEqual(b.Categories, want) {
		t.Errorf("categories = %v, want %v", b.Categories, want)
	}
	if len(b.Questions) != 6 {
		t.Errorf("got %d questions, want 6 (2+2+2 general)", len(b.Questions))
	}
	if b.Synthesis != "This content combines emotional language with bias markers — often indicating persuasive rather than informational intent." {
		t.Errorf("synthesis = %q", b.Synthesis)
	}
}

func TestReflectionThresholdsNotMet(t *testing.T) {
	g := NewReflectionGenerator(1)

	// Every value sits exactly on its threshold, so nothing fires.
	b := g.Generate(&models.AnalysisResults{
		Sentiment: &models.SentimentResult{EmotionalIntensity: 40},
		Bias:      &models.BiasResult{BiasScore: 30},
		Fallacies: &models.FallacyReport{TotalMatches: 0},
		Claims: &models.ClaimReport{
			Counts:       map[string]int{models.ClaimStrong: 2},
			Distribution: models.ClaimDistribution{OpinionPercent: 50},
		},
		Source: &models.SourceCredibility{Score: 40},
	})

	if len(b.Categories) != 0 {
		t.Errorf("categories = %v, want none", b.Categories)
	}
	if len(b.Questions) != 2 {
		t.Errorf("got %d questions, want the 2 general ones", len(b.Questions))
	}
}

func TestReflectionAllTriggers(t *testing.T) {
	g := NewReflectionGenerator(7)

	b := g.Generate(&models.AnalysisResults{
		Sentiment: &models.SentimentResult{EmotionalIntensity: 80},
		Bias:      &models.BiasResult{BiasScore: 60},
		Fallacies: &models.FallacyReport{TotalMatches: 3},
		Claims: &models.ClaimReport{
			Counts:       map[string]int{models.ClaimStrong: 4},
			Distribution: models.ClaimDistribution{OpinionPercent: 70},
		},
		Source: &models.SourceCredibility{Score: 25},
	})

	want := []string{"high_emotion", "high_bias", "fallacies_detected", "strong_claims", "low_credibility", "opinion_heavy"}
	if !reflect.DeepEqual(b.Categories, want) {
		t.Errorf("categories = %v, want %v", b.Categories, want)
	}
	if len(b.Questions) != 7 {
		t.Errorf("got %d questions, want cap of 7", len(b.Questions))
	}
	if !strings.Contains(b.Synthesis, "3 potential logical fallacy pattern(s) detected.") {
		t.Errorf("synthesis missing fallacy part: %q", b.Synthesis)
	}
	if !strings.Contains(b.Synthesis, "Cross-reference key claims.") {
		t.Errorf("synthesis missing credibility part: %q", b.Synthesis)
	}
}

func TestReflectionDeterministicForSeed(t *testing.T) {
	results := &models.AnalysisResults{
		Bias:      &models.BiasResult{BiasScore: 45},
		Fallacies: &models.FallacyReport{TotalMatches: 1},
	}

	a := NewReflectionGenerator(42).Generate(results)
	b := NewReflectionGenerator(42).Generate(results)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different bundles:\n%+v\n%+v", a, b)
	}
}

func TestReflectionQuestionsComeFromFiredBanks(t *testing.T) {
	g := NewReflectionGenerator(3)

	b := g.Generate(&models.AnalysisResults{
		Source: &models.SourceCredibility{Score: 10},
	})

	banks := []string{"low_credibility", "general"}
	for _, q := range b.Questions {
		found := false
		for _, bank := range banks {
			if questionInBank(bank, q) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("question %q not from fired banks %v", q, banks)
		}
	}
	if len(b.Questions) != 4 {
		t.Errorf("got %d questions, want 4 (2 credibility + 2 general)", len(b.Questions))
	}
}
