package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

// fallacyPattern is one compiled pattern within a fallacy family. When
// backref is set the pattern carries four capture groups and a match only
// counts when group 1 equals group 3 and group 2 equals group 4, which
// emulates a backreference ("X is Y because X is Y").
type fallacyPattern struct {
	re      *regexp.Regexp
	backref bool
}

type fallacyDef struct {
	name             string
	description      string
	severity         string
	patterns         []fallacyPattern
	minSentenceWords int
}

func fp(expr string) fallacyPattern {
	return fallacyPattern{re: regexp.MustCompile(expr)}
}

var fallacyDefs = []fallacyDef{
	{
		name:        "Ad Hominem",
		description: "Attacks the person rather than their argument.",
		severity:    "high",
		patterns: []fallacyPattern{
			fp(`(?i)\b(you're|they're|he's|she's)\s+(just|only|nothing but|merely)\s+(a|an)\s+\w+`),
			fp(`(?i)\bof course (?:you|he|she|they) would say that\b`),
			fp(`(?i)\bconsider the source\b`),
			fp(`(?i)\blook who'?s talking\b`),
			fp(`(?i)\b(?:typical|classic)\s+(?:liberal|conservative|leftist|right[\s-]?winger|democrat|republican)\b`),
		},
		minSentenceWords: 5,
	},
	{
		name:        "Straw Man",
		description: "Misrepresents someone's argument to attack a distorted version.",
		severity:    "high",
		patterns: []fallacyPattern{
			fp(`(?i)\bso (?:you're|you are) saying\b`),
			fp(`(?i)\bwhat (?:you're|they're) really saying is\b`),
			fp(`(?i)\b(?:basically|essentially),?\s*(?:you|they)\s+(?:want|believe|think|are saying)\b`),
			fp(`(?i)\b(?:want(?:s)? to|trying to)\s+(?:destroy|ban|eliminate|abolish)\s+(?:all|every)\b`),
		},
		minSentenceWords: 6,
	},
	{
		name:        "Appeal to Authority",
		description: "Uses authority status as evidence rather than the argument itself.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\b(?:experts|scientists|doctors) (?:agree|all agree|have confirmed|have proven)\b`),
			fp(`(?i)\baccording to (?:leading|top|renowned|eminent) (?:experts|scientists|researchers)\b`),
			fp(`(?i)\beven (?:he|she|they|[A-Z]\w+) (?:agrees?|admits?|acknowledges?|concedes?)\b`),
		},
		minSentenceWords: 6,
	},
	{
		name:        "Appeal to Emotion",
		description: "Manipulates feelings instead of using logical reasoning.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\bthink of the (?:children|families|victims|elderly|veterans)\b`),
			fp(`(?i)\bhow (?:would|could|can) you (?:live with yourself|sleep at night)\b`),
			fp(`(?i)\bimagine if (?:this|it) (?:happened|were|was) (?:to you|to your)\b`),
			fp(`(?i)\byou should be (?:ashamed|afraid|worried|outraged|disgusted)\b`),
			fp(`(?i)\bwon't someone (?:think of|care about)\b`),
		},
		minSentenceWords: 5,
	},
	{
		name:        "False Dilemma",
		description: "Presents only two options when more exist.",
		severity:    "high",
		patterns: []fallacyPattern{
			fp(`(?i)\byou(?:'re| are) (?:either with us or against us)\b`),
			fp(`(?i)\b(?:the only|there(?:'s| is) only one) (?:option|choice|way|solution|answer)\b`),
			fp(`(?i)\bif (?:you're|we're|you are|we are) not (?:for|supporting|with).{3,30},?\s*(?:then you're|you must be|you are)\b`),
			fp(`(?i)\byou (?:can|must) either .{5,40} or .{5,40}\b`),
		},
		minSentenceWords: 7,
	},
	{
		name:        "Slippery Slope",
		description: "Assumes one event inevitably leads to extreme consequences without justification.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\bwhere does it (?:end|stop)\b`),
			fp(`(?i)\bnext thing you know\b`),
			fp(`(?i)\bbefore (?:you|we) know it\b`),
			fp(`(?i)\bif we (?:allow|let|permit) this.{5,40}(?:then|next|soon|eventually)\b`),
			fp(`(?i)\bopen(?:s|ing)? the (?:door|floodgate)s?\b`),
			fp(`(?i)\bthin end of the wedge\b`),
			fp(`(?i)\btoday .{5,25},?\s*tomorrow .{5,25}\b`),
		},
		minSentenceWords: 6,
	},
	{
		name:        "Bandwagon / Appeal to Popularity",
		description: "Argues something is true because many people believe it.",
		severity:    "low",
		patterns: []fallacyPattern{
			fp(`(?i)\b(?:everyone|everybody|millions of people) (?:knows?|agrees?|believes?|thinks?)\b`),
			fp(`(?i)\b(?:growing|increasing) number of (?:people|Americans?|experts?)\s+(?:believe|think|agree|support)\b`),
			fp(`(?i)\b\d+\s*(?:million|percent|%) of (?:people|Americans?|voters?) (?:agree|believe|support|think)\b`),
		},
		minSentenceWords: 5,
	},
	{
		name:        "Red Herring / Deflection",
		description: "Introduces an irrelevant topic to divert from the issue.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\bthe real (?:issue|question|problem) (?:is|here is)\b`),
			fp(`(?i)\blet'?s not forget (?:that|about)\b`),
			fp(`(?i)\bwe should (?:really|instead) be (?:talking|focusing|looking) (?:about|at|on)\b`),
			fp(`(?i)\bforget about that.{0,10}(?:what about|the real)\b`),
		},
		minSentenceWords: 6,
	},
	{
		name:        "Whataboutism (Tu Quoque)",
		description: "Deflects criticism by pointing to someone else's behavior.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\b(?:but |yeah but |and )?what about (?:when|the time)\b`),
			fp(`(?i)\byou(?:'re| are) one to talk\b`),
			fp(`(?i)\bpot calling the kettle\b`),
			fp(`(?i)\bhow about (?:when you|what they|what he|what she)\b`),
			fp(`(?i)\b(?:but|yet) (?:you|they|he|she) (?:also|too) (?:did|do|have)\b`),
		},
		minSentenceWords: 5,
	},
	{
		name:        "Hasty Generalization",
		description: "Draws broad conclusions from insufficient evidence.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\b(?:i knew a|my friend|my neighbor|this one guy).{5,30}(?:so|therefore|that'?s why|which (?:means|proves|shows))\b`),
			fp(`(?i)\b(?:one|two|a few|couple of?) (?:examples?|cases?|instances?)\s+(?:prove|show|demonstrate|confirm)\b`),
			fp(`(?i)\bjust look at .{5,30}(?:clearly|obviously|proves?|shows?)\b`),
		},
		minSentenceWords: 8,
	},
	{
		name:        "Circular Reasoning",
		description: "The conclusion is assumed in the premise.",
		severity:    "high",
		patterns: []fallacyPattern{
			fp(`(?i)\bit'?s true because .{5,30} (?:is true|says so|because it is)\b`),
			fp(`(?i)\bthe bible is true because .{3,20} the bible\b`),
			{re: regexp.MustCompile(`(?i)\b(\w+) is (\w+) because (\w+) is (\w+)\b`), backref: true},
		},
		minSentenceWords: 8,
	},
	{
		name:        "Appeal to Nature",
		description: "Argues something is good because it's 'natural' or bad because it's 'unnatural'.",
		severity:    "low",
		patterns: []fallacyPattern{
			fp(`(?i)\b(?:natural|nature) (?:is|means?) (?:always |inherently )?(?:better|safer|healthier|good)\b`),
			fp(`(?i)\b(?:unnatural|artificial|synthetic|man[\s-]?made) (?:is|means?|are) (?:always |inherently )?(?:bad|harmful|dangerous|unhealthy)\b`),
			fp(`(?i)\b(?:nature intended|against nature|playing god)\b`),
		},
		minSentenceWords: 5,
	},
	{
		name:        "False Cause (Post Hoc)",
		description: "Assumes causation from correlation or sequence.",
		severity:    "medium",
		patterns: []fallacyPattern{
			fp(`(?i)\b(?:ever since|right after|immediately after) .{5,40} (?:started|began|happened|things went)\b`),
			fp(`(?i)\b(?:no |not a )?coincidence\??\b`),
			fp(`(?i)\bcorrelat(?:ion|es?) .{3,15} (?:cause[ds]?|proof|proves?)\b`),
		},
		minSentenceWords: 6,
	},
}

// FallacyDetector scans sentences for logical fallacy markers. Stateless
// and safe for concurrent use.
type FallacyDetector struct{}

// NewFallacyDetector constructs a detector over the built-in pattern set.
func NewFallacyDetector() *FallacyDetector {
	return &FallacyDetector{}
}

// Analyze scans text sentence by sentence and reports fallacy findings
// sorted by severity then match count.
func (d *FallacyDetector) Analyze(text string) *models.FallacyReport {
	if len(strings.TrimSpace(text)) < 20 {
		return emptyFallacies()
	}

	var sentences []string
	for _, s := range terminalPunctRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) > 10 {
			sentences = append(sentences, s)
		}
	}

	var findings []models.FallacyFinding
	totalMatches := 0

	for _, def := range fallacyDefs {
		var matches []string
		seen := make(map[string]bool)

		for _, sentence := range sentences {
			if len(strings.Fields(sentence)) < def.minSentenceWords {
				continue
			}
			for _, p := range def.patterns {
				for _, m := range matchFallacy(p, sentence) {
					trimmed := strings.TrimSpace(m)
					key := strings.ToLower(trimmed)
					if !seen[key] {
						seen[key] = true
						matches = append(matches, trimmed)
					}
				}
			}
		}

		if len(matches) > 0 {
			findings = append(findings, models.FallacyFinding{
				Name:        def.name,
				Description: def.description,
				Severity:    def.severity,
				MatchCount:  len(matches),
				Examples:    capStrings(matches, 3),
			})
			totalMatches += len(matches)
		}
	}

	sevRank := map[string]int{"high": 3, "medium": 2, "low": 1}
	sort.SliceStable(findings, func(i, j int) bool {
		if sevRank[findings[i].Severity] != sevRank[findings[j].Severity] {
			return sevRank[findings[i].Severity] > sevRank[findings[j].Severity]
		}
		return findings[i].MatchCount > findings[j].MatchCount
	})

	density := 0
	if len(sentences) > 0 {
		density = clampInt(int(math.Round(float64(totalMatches)/float64(len(sentences))*40)), 0, 100)
	}

	return &models.FallacyReport{
		Fallacies:      findings,
		TotalMatches:   totalMatches,
		FallacyDensity: density,
		RiskLabel:      fallacyRiskLabel(density),
		SentenceCount:  len(sentences),
	}
}

func matchFallacy(p fallacyPattern, sentence string) []string {
	if !p.backref {
		return p.re.FindAllString(sentence, -1)
	}
	var out []string
	for _, groups := range p.re.FindAllStringSubmatch(sentence, -1) {
		if strings.EqualFold(groups[1], groups[3]) && strings.EqualFold(groups[2], groups[4]) {
			out = append(out, groups[0])
		}
	}
	return out
}

func fallacyRiskLabel(density int) string {
	switch {
	case density < 10:
		return "Low Risk"
	case density < 25:
		return "Mild Risk"
	case density < 50:
		return "Moderate Risk"
	case density < 75:
		return "High Risk"
	default:
		return "Very High Risk"
	}
}

func emptyFallacies() *models.FallacyReport {
	return &models.FallacyReport{
		Fallacies: []models.FallacyFinding{},
		RiskLabel: "Low Risk",
	}
}
