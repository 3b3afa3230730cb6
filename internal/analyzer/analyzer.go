// Package analyzer implements the critical-reading analysis engine:
// lexicon-based sentiment, loaded-language and framing detection, logical
// fallacy scanning, claim classification, readability metrics, source
// credibility scoring and Socratic reflection prompts, combined by an
// orchestrator that picks analysis depth from word count.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/zombar/claritylens/internal/models"
)

// Depth thresholds in words.
const (
	ThresholdMinimum  = 3
	ThresholdBasic    = 10
	ThresholdStandard = 50
	ThresholdFull     = 200
)

// ScoringWeights are the component weights of the composite score. The
// composite is the weighted mean over the components that actually ran,
// so missing components redistribute their weight instead of dragging the
// score down.
type ScoringWeights struct {
	Source      float64
	Bias        float64
	Fallacies   float64
	Objectivity float64
	Readability float64
	// AIBlend mixes the algorithmic composite with the AI credibility
	// score: composite*(1-AIBlend) + ai*AIBlend.
	AIBlend float64
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Source:      0.30,
		Bias:        0.25,
		Fallacies:   0.20,
		Objectivity: 0.15,
		Readability: 0.10,
		AIBlend:     0.4,
	}
}

// Enhancer produces an AI annotation for text. Implementations live in
// the ai package; the orchestrator only needs the interface.
type Enhancer interface {
	Enhance(ctx context.Context, text, sourceURL string) (*models.AIAnnotation, error)
}

// Config controls orchestrator construction.
type Config struct {
	// Lexicon overrides the sentiment lexicon; nil selects the default.
	Lexicon *Lexicon
	// Weights overrides composite scoring; zero value selects defaults.
	Weights *ScoringWeights
	// Enhancer, when set, is called synchronously for texts of at least
	// ThresholdBasic words. Leave nil to run enhancement elsewhere.
	Enhancer Enhancer
	// ReflectionSeed, when non-zero, makes reflection question selection
	// deterministic.
	ReflectionSeed int64
	Logger         *slog.Logger
}

// Analyzer orchestrates the analysis components.
type Analyzer struct {
	sentiment   *SentimentAnalyzer
	bias        *BiasDetector
	fallacies   *FallacyDetector
	claims      *ClaimClassifier
	readability *ReadabilityScorer
	source      *SourceCredibilityScorer
	reflection  *ReflectionGenerator
	weights     ScoringWeights
	enhancer    Enhancer
	logger      *slog.Logger
}

// New creates an Analyzer from cfg.
func New(cfg Config) *Analyzer {
	weights := DefaultWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}
	reflection := NewReflectionGeneratorEntropy()
	if cfg.ReflectionSeed != 0 {
		reflection = NewReflectionGenerator(cfg.ReflectionSeed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		sentiment:   NewSentimentAnalyzer(cfg.Lexicon),
		bias:        NewBiasDetector(),
		fallacies:   NewFallacyDetector(),
		claims:      NewClaimClassifier(),
		readability: NewReadabilityScorer(),
		source:      NewSourceCredibilityScorer(),
		reflection:  reflection,
		weights:     weights,
		enhancer:    cfg.Enhancer,
		logger:      logger,
	}
}

// DepthFor maps a word count to an analysis depth.
func DepthFor(wordCount int) models.AnalysisDepth {
	switch {
	case wordCount < ThresholdMinimum:
		return models.DepthInsufficient
	case wordCount < ThresholdBasic:
		return models.DepthBasic
	case wordCount < ThresholdStandard:
		return models.DepthStandard
	case wordCount < ThresholdFull:
		return models.DepthFull
	default:
		return models.DepthComprehensive
	}
}

// Analyze runs the pipeline at the depth the text supports. The context
// only gates the optional AI enhancement; the algorithmic pass is pure
// computation.
func (a *Analyzer) Analyze(ctx context.Context, text, sourceURL string) *models.CompositeAnalysis {
	clean := strings.TrimSpace(text)
	wordCount := len(strings.Fields(clean))
	depth := DepthFor(wordCount)

	if depth == models.DepthInsufficient {
		plural := "s"
		if wordCount == 1 {
			plural = ""
		}
		return &models.CompositeAnalysis{
			Depth:     depth,
			WordCount: wordCount,
			Message: fmt.Sprintf("Only %d word%s selected. Select a sentence or paragraph for meaningful analysis.",
				wordCount, plural),
			AnalyzedAt: time.Now().UTC(),
		}
	}

	results := &models.AnalysisResults{
		Sentiment:   a.sentiment.Analyze(clean),
		Readability: a.readability.Analyze(clean),
	}

	var depthNote string
	if depth == models.DepthBasic {
		depthNote = "Limited analysis — select more text for bias, fallacy, and claim detection."
		results.Source = a.source.Analyze(sourceURL, "")
	} else {
		results.Bias = a.bias.Analyze(clean)
		results.Fallacies = a.fallacies.Analyze(clean)
		results.Claims = a.claims.Analyze(clean)
		results.Source = a.source.Analyze(sourceURL, clean)
		results.Reflection = a.reflection.Generate(results)
		if depth == models.DepthStandard {
			depthNote = "Short sample — results are indicative but may not capture full context."
		}
	}

	out := &models.CompositeAnalysis{
		Depth:          depth,
		DepthNote:      depthNote,
		WordCount:      wordCount,
		CompositeScore: a.CompositeScore(results),
		Results:        results,
		AnalyzedAt:     time.Now().UTC(),
	}

	if a.enhancer != nil && wordCount >= ThresholdBasic {
		ai, err := a.enhancer.Enhance(ctx, clean, sourceURL)
		if err != nil {
			a.logger.Warn("ai enhancement failed", "error", err)
			out.AIError = err.Error()
		} else {
			out.AI = ai
			out.CompositeScore = a.BlendScore(out.CompositeScore, ai.CredibilityScore)
		}
	}

	return out
}

// CompositeScore computes the weighted mean credibility score over the
// components present in results, 0-100. With no components it returns the
// neutral 50.
func (a *Analyzer) CompositeScore(results *models.AnalysisResults) int {
	if results == nil {
		return 50
	}
	sum, weightSum := 0.0, 0.0
	add := func(value, weight float64) {
		sum += value * weight
		weightSum += weight
	}
	if results.Source != nil {
		add(float64(results.Source.Score), a.weights.Source)
	}
	if results.Bias != nil {
		add(float64(100-results.Bias.BiasScore), a.weights.Bias)
	}
	if results.Fallacies != nil {
		add(float64(100-results.Fallacies.FallacyDensity), a.weights.Fallacies)
	}
	if results.Sentiment != nil {
		add(float64(results.Sentiment.Objectivity), a.weights.Objectivity)
	}
	if results.Readability != nil {
		add(math.Min(100, results.Readability.Scores.FleschEase), a.weights.Readability)
	}
	if weightSum == 0 {
		return 50
	}
	return clampInt(int(math.Round(sum/weightSum)), 0, 100)
}

// BlendScore mixes the algorithmic composite with an AI credibility score.
func (a *Analyzer) BlendScore(composite, aiScore int) int {
	blend := a.weights.AIBlend
	v := float64(composite)*(1-blend) + float64(aiScore)*blend
	return clampInt(int(math.Round(v)), 0, 100)
}
