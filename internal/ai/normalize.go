package ai

import (
	"math"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

var validClaimTypes = map[string]bool{
	"verifiable_fact":      true,
	"opinion":              true,
	"value_judgment":       true,
	"prediction":           true,
	"unsupported_claim":    true,
	"well_supported_claim": true,
	"misleading_claim":     true,
	"definitional_claim":   true,
}

var validSeverities = map[string]bool{"low": true, "medium": true, "high": true}

// Normalize maps a raw decoded model response to a complete AIAnnotation.
// It never fails: missing fields get defaults, malformed entries are
// dropped, and numeric fields are clamped to their documented ranges.
func Normalize(raw map[string]any) *models.AIAnnotation {
	out := &models.AIAnnotation{
		OverallAssessment:      strOr(raw["overallAssessment"], "Analysis completed but overall assessment was not generated."),
		Purpose:                strOr(raw["purpose"], "mixed"),
		PurposeConfidence:      numOr(raw["purposeConfidence"], 0.5),
		CredibilityScore:       clampScore(numOr(raw["credibilityScore"], 50)),
		CredibilityReasoning:   strOr(raw["credibilityReasoning"], ""),
		KeyTakeaway:            strOr(raw["keyTakeaway"], ""),
		Fallacies:              []models.AIFallacy{},
		ManipulationTechniques: []models.AIManipulationTechnique{},
		ClaimAssessment:        []models.AIClaimAssessment{},
		RhetoricalStrategies:   []models.AIRhetoricalStrategy{},
		SuggestedQuestions:     []string{},
	}
	if out.Purpose == "" {
		out.Purpose = "mixed"
	}

	out.BiasAnalysis = normalizeBias(asMap(raw["biasAnalysis"]))
	out.MissingContext = normalizeMissingContext(asMap(raw["missingContext"]))

	for _, item := range asSlice(raw["fallacies"]) {
		m := asMap(item)
		if m == nil || strOr(m["name"], "") == "" || strOr(m["explanation"], "") == "" {
			continue
		}
		severity := strOr(m["severity"], "medium")
		if !validSeverities[severity] {
			severity = "medium"
		}
		out.Fallacies = append(out.Fallacies, models.AIFallacy{
			Name:        strOr(m["name"], ""),
			Quote:       strOr(m["quote"], ""),
			Explanation: strOr(m["explanation"], ""),
			Severity:    severity,
			Confidence:  clampUnit(numOr(m["confidence"], 0.5)),
		})
	}

	for _, item := range asSlice(raw["manipulationTechniques"]) {
		m := asMap(item)
		if m == nil || strOr(m["technique"], "") == "" {
			continue
		}
		out.ManipulationTechniques = append(out.ManipulationTechniques, models.AIManipulationTechnique{
			Technique:   strOr(m["technique"], ""),
			Quote:       strOr(m["quote"], ""),
			Explanation: strOr(m["explanation"], ""),
		})
	}

	for _, item := range asSlice(raw["claimAssessment"]) {
		m := asMap(item)
		if m == nil || strOr(m["claim"], "") == "" {
			continue
		}
		claimType := strOr(m["type"], "")
		if !validClaimTypes[claimType] {
			claimType = "unsupported_claim"
		}
		evidence := strOr(m["evidenceNeeded"], "")
		if evidence == "" {
			evidence = strOr(m["evidence_needed"], "")
		}
		flags := strSlice(m["redFlags"])
		if len(flags) == 0 {
			flags = strSlice(m["red_flags"])
		}
		out.ClaimAssessment = append(out.ClaimAssessment, models.AIClaimAssessment{
			Claim:          strOr(m["claim"], ""),
			Type:           claimType,
			Confidence:     clampUnit(numOr(m["confidence"], 0.5)),
			Reasoning:      strOr(m["reasoning"], ""),
			EvidenceNeeded: evidence,
			RedFlags:       flags,
		})
	}

	for _, item := range asSlice(raw["rhetoricalStrategies"]) {
		m := asMap(item)
		if m == nil || strOr(m["strategy"], "") == "" {
			continue
		}
		out.RhetoricalStrategies = append(out.RhetoricalStrategies, models.AIRhetoricalStrategy{
			Strategy:    strOr(m["strategy"], ""),
			Explanation: strOr(m["explanation"], ""),
		})
	}

	for _, q := range strSlice(raw["suggestedQuestions"]) {
		if len(q) > 10 {
			out.SuggestedQuestions = append(out.SuggestedQuestions, q)
		}
		if len(out.SuggestedQuestions) == 7 {
			break
		}
	}

	return out
}

func normalizeBias(m map[string]any) models.AIBiasAnalysis {
	if m == nil {
		return models.AIBiasAnalysis{
			Direction:         "neutral",
			Severity:          "none",
			Explanation:       "No bias analysis generated.",
			FramingTechniques: []string{},
		}
	}
	return models.AIBiasAnalysis{
		Direction:         strOr(m["direction"], "neutral"),
		Severity:          strOr(m["severity"], "none"),
		Explanation:       strOr(m["explanation"], ""),
		FramingTechniques: strSlice(m["framingTechniques"]),
	}
}

func normalizeMissingContext(m map[string]any) models.AIMissingContext {
	out := models.AIMissingContext{
		Perspectives: []string{},
		Evidence:     []string{},
		Caveats:      []string{},
	}
	if m == nil {
		return out
	}
	out.Perspectives = strSlice(m["perspectives"])
	out.Evidence = strSlice(m["evidence"])
	out.Caveats = strSlice(m["caveats"])
	if s, ok := m["summary"].(string); ok {
		out.Summary = s
	} else {
		// Synthesize a short summary from whichever lists are present.
		var parts []string
		parts = append(parts, out.Perspectives...)
		parts = append(parts, out.Evidence...)
		parts = append(parts, out.Caveats...)
		if len(parts) > 2 {
			parts = parts[:2]
		}
		out.Summary = strings.Join(parts, " ")
	}
	return out
}

func strOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func numOr(v any, def float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func strSlice(v any) []string {
	out := []string{}
	for _, item := range asSlice(v) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(100, math.Round(v))))
}
