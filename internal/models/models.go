package models

import "time"

// AnalysisDepth is the tier of analysis thoroughness, selected purely by
// word count.
type AnalysisDepth string

const (
	DepthInsufficient  AnalysisDepth = "insufficient"
	DepthBasic         AnalysisDepth = "basic"
	DepthStandard      AnalysisDepth = "standard"
	DepthFull          AnalysisDepth = "full"
	DepthComprehensive AnalysisDepth = "comprehensive"
)

// AnalysisRequest is the immutable input to the engine.
type AnalysisRequest struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}

// Analysis is a stored analysis record.
type Analysis struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	SourceURL string            `json:"source_url,omitempty"`
	Result    CompositeAnalysis `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CompositeAnalysis aggregates every sub-result plus the 0-100 composite
// score and depth metadata. It is the only entity returned to callers.
type CompositeAnalysis struct {
	Depth          AnalysisDepth    `json:"depth"`
	DepthNote      string           `json:"depth_note,omitempty"`
	WordCount      int              `json:"word_count"`
	Message        string           `json:"message,omitempty"` // populated only for insufficient input
	CompositeScore int              `json:"composite_score"`
	Results        *AnalysisResults `json:"results"` // nil when depth is insufficient
	AI             *AIAnnotation    `json:"ai,omitempty"`
	AIError        string           `json:"ai_error,omitempty"`
	AnalyzedAt     time.Time        `json:"analyzed_at"`
}

// AnalysisResults holds the algorithmic component outputs. Fields left nil
// were not run at the selected depth.
type AnalysisResults struct {
	Sentiment   *SentimentResult    `json:"sentiment,omitempty"`
	Readability *ReadabilityMetrics `json:"readability,omitempty"`
	Bias        *BiasResult         `json:"bias,omitempty"`
	Fallacies   *FallacyReport      `json:"fallacies,omitempty"`
	Claims      *ClaimReport        `json:"claims,omitempty"`
	Source      *SourceCredibility  `json:"source,omitempty"`
	Reflection  *ReflectionBundle   `json:"reflection,omitempty"`
}

// WordTally reports occurrences of a tracked word class (intensifiers,
// hedges) alongside the distinct words seen.
type WordTally struct {
	Count   int      `json:"count"`
	Density float64  `json:"density,omitempty"`
	Words   []string `json:"words"`
}

// PatternMatch is one matched phrase-pattern group.
type PatternMatch struct {
	Label    string   `json:"label"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// SentimentResult is the emotional-tone assessment of a span of text.
type SentimentResult struct {
	ToneLabel          string         `json:"tone_label"`
	NormalizedScore    float64        `json:"normalized_score"` // net polarity / sqrt(word count)
	PositiveScore      float64        `json:"positive_score"`
	NegativeScore      float64        `json:"negative_score"`
	NetScore           float64        `json:"net_score"`
	EmotionalIntensity int            `json:"emotional_intensity"` // 0-100
	Objectivity        int            `json:"objectivity"`         // 0-100
	PositiveWords      []string       `json:"positive_words"`
	NegativeWords      []string       `json:"negative_words"`
	Intensifiers       WordTally      `json:"intensifiers"`
	Hedges             WordTally      `json:"hedges"`
	EmotionalPatterns  []PatternMatch `json:"emotional_patterns"`
	WordCount          int            `json:"word_count"`
}

// PhraseCount is a matched phrase and how often it appeared.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// FramingMatch is an ideological framing pattern found in the text.
type FramingMatch struct {
	Label    string   `json:"label"`
	Bias     string   `json:"bias"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// PassiveVoiceStats reports passive constructions per sentence.
type PassiveVoiceStats struct {
	Count   int `json:"count"`
	Density int `json:"density"` // percent of sentences
}

// BiasResult is the loaded-language and framing assessment.
type BiasResult struct {
	BiasScore        int                      `json:"bias_score"` // 0-100
	BiasLabel        string                   `json:"bias_label"`
	BalanceLabel     string                   `json:"balance_label"`
	LoadedLanguage   map[string][]PhraseCount `json:"loaded_language"`
	TotalLoadedCount int                      `json:"total_loaded_count"`
	WeaselWords      []PhraseCount            `json:"weasel_words"`
	Framing          []FramingMatch           `json:"framing"`
	PassiveVoice     PassiveVoiceStats        `json:"passive_voice"`
	LeadingQuestions []string                 `json:"leading_questions"`
	AbsolutistCount  int                      `json:"absolutist_count"`
	WordCount        int                      `json:"word_count"`
}

// FallacyFinding is one named fallacy with its matched excerpts.
type FallacyFinding struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"` // low, medium, high
	MatchCount  int      `json:"match_count"`
	Examples    []string `json:"examples"`
}

// FallacyReport is the full fallacy scan, sorted severity-desc then
// match-count-desc.
type FallacyReport struct {
	Fallacies      []FallacyFinding `json:"fallacies"`
	TotalMatches   int              `json:"total_matches"`
	FallacyDensity int              `json:"fallacy_density"` // 0-100
	RiskLabel      string           `json:"risk_label"`
	SentenceCount  int              `json:"sentence_count"`
}

// Claim classification values.
const (
	ClaimOpinion            = "opinion"
	ClaimFactual            = "factual_claim"
	ClaimHedgedFact         = "hedged_fact"
	ClaimStrong             = "strong_claim"
	ClaimHedged             = "hedged_claim"
	ClaimRhetoricalQuestion = "rhetorical_question"
)

// MarkerMatch is one linguistic marker found in a sentence.
type MarkerMatch struct {
	Text string `json:"text"`
	Type string `json:"type"` // opinion, factual, claim, hedged
}

// ClaimClassification classifies a single sentence.
type ClaimClassification struct {
	Text           string        `json:"text"`
	Classification string        `json:"classification"`
	Confidence     float64       `json:"confidence"` // 0-1
	Markers        []MarkerMatch `json:"markers"`
	Explanation    string        `json:"explanation"`
}

// ClaimDistribution is the percentage split across claim categories.
type ClaimDistribution struct {
	OpinionPercent int `json:"opinion_percent"`
	ClaimPercent   int `json:"claim_percent"`
	FactualPercent int `json:"factual_percent"`
}

// ClaimReport is the sentence-level claim classification summary.
type ClaimReport struct {
	Classifications []ClaimClassification `json:"classifications"`
	Counts          map[string]int        `json:"counts"`
	Distribution    ClaimDistribution     `json:"distribution"`
	ContentType     string                `json:"content_type"`
	TotalSentences  int                   `json:"total_sentences"`
	TotalClassified int                   `json:"total_classified"`
}

// ReadabilityScores holds the six standard formulas plus the composite
// grade (mean of the five grade-level formulas; Flesch Ease is an ease
// score, not a grade, and is excluded).
type ReadabilityScores struct {
	FleschEase     float64 `json:"flesch_ease"`
	FleschKincaid  float64 `json:"flesch_kincaid"`
	GunningFog     float64 `json:"gunning_fog"`
	ColemanLiau    float64 `json:"coleman_liau"`
	SMOG           float64 `json:"smog"`
	ARI            float64 `json:"ari"`
	CompositeGrade float64 `json:"composite_grade"`
}

// ReadabilityStats are the word/sentence statistics behind the scores.
type ReadabilityStats struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	ComplexWordCount    int     `json:"complex_word_count"`
	ComplexWordPercent  float64 `json:"complex_word_percent"`
	VocabularyDiversity int     `json:"vocabulary_diversity"`
	ReadingTimeMinutes  int     `json:"reading_time_minutes"`
}

// SentenceStructure summarizes sentence-length distribution.
type SentenceStructure struct {
	LongSentences  int     `json:"long_sentences"`
	ShortSentences int     `json:"short_sentences"`
	Variance       float64 `json:"variance"`
}

// ReadabilityMetrics is the multi-formula readability assessment.
type ReadabilityMetrics struct {
	Scores            ReadabilityScores `json:"scores"`
	LevelLabel        string            `json:"level_label"`
	Stats             ReadabilityStats  `json:"stats"`
	SentenceStructure SentenceStructure `json:"sentence_structure"`
	ComplexWords      []string          `json:"complex_words"`
}

// CredibilitySignal is one positive or negative credibility indicator.
type CredibilitySignal struct {
	Type   string `json:"type"` // positive, neutral, negative
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
}

// SourceCredibility scores a URL plus text snippet.
type SourceCredibility struct {
	Score            int                 `json:"score"` // 0-100
	CredibilityLabel string              `json:"credibility_label"`
	Domain           string              `json:"domain"`
	Signals          []CredibilitySignal `json:"signals"`
	Warnings         []CredibilitySignal `json:"warnings"`
}

// ReflectionBundle is the Socratic question set conditioned on the other
// components' outputs.
type ReflectionBundle struct {
	Questions  []string `json:"questions"`
	Categories []string `json:"categories"`
	Synthesis  string   `json:"synthesis"`
}

// AIBiasAnalysis is the model's bias assessment.
type AIBiasAnalysis struct {
	Direction         string   `json:"direction"`
	Severity          string   `json:"severity"`
	Explanation       string   `json:"explanation"`
	FramingTechniques []string `json:"framing_techniques"`
}

// AIFallacy is one fallacy the model identified, with its own confidence.
type AIFallacy struct {
	Name        string  `json:"name"`
	Quote       string  `json:"quote"`
	Explanation string  `json:"explanation"`
	Severity    string  `json:"severity"`
	Confidence  float64 `json:"confidence"`
}

// AIManipulationTechnique is one persuasion technique the model found.
type AIManipulationTechnique struct {
	Technique   string `json:"technique"`
	Quote       string `json:"quote"`
	Explanation string `json:"explanation"`
}

// AIClaimAssessment is the model's per-claim judgment.
type AIClaimAssessment struct {
	Claim          string   `json:"claim"`
	Type           string   `json:"type"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	EvidenceNeeded string   `json:"evidence_needed"`
	RedFlags       []string `json:"red_flags"`
}

// AIMissingContext lists what the text leaves out.
type AIMissingContext struct {
	Perspectives []string `json:"perspectives"`
	Evidence     []string `json:"evidence"`
	Caveats      []string `json:"caveats"`
	Summary      string   `json:"summary"`
}

// AIRhetoricalStrategy is one rhetorical strategy and how it operates.
type AIRhetoricalStrategy struct {
	Strategy    string `json:"strategy"`
	Explanation string `json:"explanation"`
}

// AIAnnotation is the model-produced assessment. Every field is
// individually normalized so a partially-malformed model response never
// breaks downstream consumers.
type AIAnnotation struct {
	OverallAssessment      string                    `json:"overall_assessment"`
	Purpose                string                    `json:"purpose"`
	PurposeConfidence      float64                   `json:"purpose_confidence"`
	BiasAnalysis           AIBiasAnalysis            `json:"bias_analysis"`
	Fallacies              []AIFallacy               `json:"fallacies"`
	ManipulationTechniques []AIManipulationTechnique `json:"manipulation_techniques"`
	ClaimAssessment        []AIClaimAssessment       `json:"claim_assessment"`
	MissingContext         AIMissingContext          `json:"missing_context"`
	RhetoricalStrategies   []AIRhetoricalStrategy    `json:"rhetorical_strategies"`
	CredibilityScore       int                       `json:"credibility_score"` // 0-100
	CredibilityReasoning   string                    `json:"credibility_reasoning"`
	SuggestedQuestions     []string                  `json:"suggested_questions"`
	KeyTakeaway            string                    `json:"key_takeaway"`
}
