package analyzer

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

var highTierDomains = []string{
	"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "npr.org", "pbs.org",
	"nature.com", "science.org", "thelancet.com", "nejm.org", "who.int",
	"cdc.gov", "nih.gov", "nasa.gov", "noaa.gov", "gov.uk", "europa.eu",
	"un.org", "worldbank.org", "nytimes.com", "washingtonpost.com", "wsj.com",
	"economist.com", "ft.com", "theguardian.com", "abc.net.au", "cbc.ca",
	"snopes.com", "factcheck.org", "politifact.com", "scholar.google.com",
	"pubmed.ncbi.nlm.nih.gov", "arxiv.org", "jstor.org", "ssrn.com",
	"springer.com", "wiley.com", "ieee.org", "acm.org",
}

var mediumTierDomains = []string{
	"cnn.com", "foxnews.com", "msnbc.com", "nbcnews.com", "cbsnews.com",
	"abcnews.go.com", "usatoday.com", "latimes.com", "bloomberg.com",
	"cnbc.com", "forbes.com", "time.com", "newsweek.com", "theatlantic.com",
	"newyorker.com", "vox.com", "axios.com", "thehill.com", "politico.com",
	"wired.com", "arstechnica.com", "techcrunch.com", "theverge.com",
	"wikipedia.org", "britannica.com", "medium.com",
}

var lowTierDomains = []string{
	"infowars.com", "naturalnews.com", "zerohedge.com", "beforeitsnews.com",
	"worldnetdaily.com", "globalresearch.ca", "rt.com", "sputniknews.com",
	"thegatewaypundit.com",
}

type tldScore struct {
	suffix string
	score  int
}

// Checked in order, first match wins, so .gov outranks .org for
// multi-label suffixes.
var tldScores = []tldScore{
	{".gov", 15}, {".edu", 12}, {".mil", 12}, {".int", 10}, {".org", 3},
	{".ac.uk", 10}, {".com", 0}, {".net", 0}, {".io", 0}, {".info", -3},
	{".biz", -5}, {".xyz", -5}, {".click", -8}, {".buzz", -8},
}

type contentSignal struct {
	re     *regexp.Regexp
	label  string
	weight int
}

var positiveSignals = []contentSignal{
	{regexp.MustCompile(`(?i)\b(according to|cited|reference[ds]?|peer[\s-]?reviewed|published in)\b`), "Evidence citation", 3},
	{regexp.MustCompile(`(?i)\b(university|institute|journal|methodology|systematic review)\b`), "Academic context", 3},
	{regexp.MustCompile(`(?i)\b(however|on the other hand|conversely|critics argue|some disagree|counterargument)\b`), "Balanced perspective", 4},
	{regexp.MustCompile(`(?i)\b(updated|correction|editor'?s note|clarification)\b`), "Transparency signals", 3},
	{regexp.MustCompile(`(?i)\b(\d+\s*percent|\d+%|survey of \d+|sample size)\b`), "Quantitative support", 2},
	{regexp.MustCompile(`(?i)\b(disclaimer|disclosure|conflict of interest|funded by)\b`), "Disclosure", 2},
}

var negativeSignals = []contentSignal{
	{regexp.MustCompile(`(?i)\b(they don't want you to know|shocking truth|what .{3,20} doesn't tell you)\b`), "Conspiracy framing", -5},
	{regexp.MustCompile(`(?i)\b(miracle cure|cure[\s-]?all|guaranteed results|secret remedy|ancient secret)\b`), "Pseudoscience markers", -4},
	{regexp.MustCompile(`(?i)\b(click here|subscribe now|share this before|limited time|act now)\b`), "Clickbait / marketing", -3},
	{regexp.MustCompile(`(?i)\b(mainstream media won't|lamestream|fake news|cover[\s-]?up)\b`), "Media distrust markers", -4},
	{regexp.MustCompile(`(?i)\b(just asking questions|do your own research|wake up sheeple)\b`), "Bad-faith inquiry", -5},
	// Deliberately case-sensitive: SHOUTING is the signal.
	{regexp.MustCompile(`\b[A-Z]{5,}\b`), "Sensationalist caps", -1},
	{regexp.MustCompile(`[!]{3,}|[?]{3,}`), "Excessive punctuation", -2},
}

var authorRe = regexp.MustCompile(`(?i)\b(by |author:|written by|reported by)\b`)
var dateWordRe = regexp.MustCompile(`(?i)\b(published|updated|posted)\s*:?\s*\w+\s+\d{1,2},?\s+\d{4}`)
var dateISORe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// SourceCredibilityScorer rates a source URL plus page text against domain
// reputation tiers, TLD trust and content-level indicators.
type SourceCredibilityScorer struct{}

// NewSourceCredibilityScorer constructs a scorer over the built-in tier
// tables.
func NewSourceCredibilityScorer() *SourceCredibilityScorer {
	return &SourceCredibilityScorer{}
}

// Analyze scores the source. Either argument may be empty; scoring starts
// from a neutral baseline of 50.
func (s *SourceCredibilityScorer) Analyze(rawURL, text string) *models.SourceCredibility {
	score := 50.0
	var signals, warnings []models.CredibilitySignal

	domain := hostnameOf(rawURL)

	switch {
	case domainInTier(domain, highTierDomains):
		score += 20
		signals = append(signals, models.CredibilitySignal{Type: "positive", Label: "High-credibility domain", Detail: domain})
	case domainInTier(domain, lowTierDomains):
		score -= 25
		warnings = append(warnings, models.CredibilitySignal{Type: "negative", Label: "Low-credibility domain", Detail: domain})
	case domainInTier(domain, mediumTierDomains):
		score += 5
		signals = append(signals, models.CredibilitySignal{Type: "neutral", Label: "Known media source", Detail: domain})
	}

	for _, t := range tldScores {
		if strings.HasSuffix(domain, t.suffix) {
			score += float64(t.score)
			if t.score > 5 {
				signals = append(signals, models.CredibilitySignal{
					Type:   "positive",
					Label:  fmt.Sprintf("Government/academic domain (%s)", t.suffix),
					Detail: domain,
				})
			}
			if t.score < -3 {
				warnings = append(warnings, models.CredibilitySignal{
					Type:   "negative",
					Label:  fmt.Sprintf("Low-trust TLD (%s)", t.suffix),
					Detail: domain,
				})
			}
			break
		}
	}

	if strings.HasPrefix(rawURL, "https://") {
		score += 2
	} else if rawURL != "" {
		score -= 5
		detail := rawURL
		if len(detail) > 60 {
			detail = detail[:60]
		}
		warnings = append(warnings, models.CredibilitySignal{Type: "negative", Label: "No HTTPS", Detail: detail})
	}

	if len(text) > 50 {
		for _, sig := range positiveSignals {
			n := len(sig.re.FindAllString(text, -1))
			if n == 0 {
				continue
			}
			score += math.Min(float64(sig.weight*2), float64(sig.weight*n))
			signals = append(signals, models.CredibilitySignal{
				Type:   "positive",
				Label:  sig.label,
				Detail: fmt.Sprintf("%d instance(s)", n),
			})
		}
		for _, sig := range negativeSignals {
			n := len(sig.re.FindAllString(text, -1))
			if n == 0 {
				continue
			}
			score += math.Max(float64(sig.weight*2), float64(sig.weight*n))
			warnings = append(warnings, models.CredibilitySignal{
				Type:   "negative",
				Label:  sig.label,
				Detail: fmt.Sprintf("%d instance(s)", n),
			})
		}
		if authorRe.MatchString(text) {
			score += 3
			signals = append(signals, models.CredibilitySignal{Type: "positive", Label: "Author attributed"})
		}
		if dateWordRe.MatchString(text) || dateISORe.MatchString(text) {
			score += 2
			signals = append(signals, models.CredibilitySignal{Type: "positive", Label: "Date provided"})
		}
	}

	final := clampInt(int(math.Round(score)), 0, 100)

	if len(signals) > 10 {
		signals = signals[:10]
	}
	if len(warnings) > 10 {
		warnings = warnings[:10]
	}

	return &models.SourceCredibility{
		Score:            final,
		CredibilityLabel: credibilityLabel(final),
		Domain:           domain,
		Signals:          signals,
		Warnings:         warnings,
	}
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		if rawURL == "" {
			return "unknown"
		}
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func domainInTier(domain string, tier []string) bool {
	for _, d := range tier {
		if strings.HasSuffix(domain, d) {
			return true
		}
	}
	return false
}

func credibilityLabel(score int) string {
	switch {
	case score >= 80:
		return "High Credibility"
	case score >= 60:
		return "Moderate Credibility"
	case score >= 40:
		return "Mixed Credibility"
	case score >= 20:
		return "Low Credibility"
	default:
		return "Very Low Credibility"
	}
}
