package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/zombar/claritylens/internal/models"
)

// loadedCategory names and their phrase lists, matched case-insensitively
// as whole words.
var loadedLanguage = map[string][]string{
	"fear_mongering": {
		"invasion", "flooding", "swarm", "plague", "ticking time bomb",
		"skyrocketing", "out of control", "under siege", "spiraling out",
		"collapse of", "wave of", "onslaught", "inundated",
	},
	"glorification": {
		"hero", "patriot", "freedom fighter", "champion", "savior", "visionary",
		"trailblazer", "genius", "legendary", "iconic", "fearless", "selfless",
		"unwavering", "tireless champion",
	},
	"demonization": {
		"thug", "radical", "extremist", "puppet", "tyrant", "monster", "predator",
		"crooked", "elitist", "out of touch", "un-american", "anti-american",
		"enemy of the people", "threat to democracy",
	},
	"euphemism": {
		"enhanced interrogation", "collateral damage", "right-sizing",
		"downsizing", "neutralize", "pacification", "regime change",
		"kinetic action", "alternative facts", "clean coal",
		"ethnic cleansing", "friendly fire", "pre-owned",
		"economically disadvantaged", "passed away", "let go",
	},
	"absolutist": {
		"always", "never", "everyone knows", "no one", "nobody", "nothing",
		"without exception", "the only way", "the only answer", "impossible",
		"guaranteed", "definitively proven", "indisputable", "irrefutable",
		"beyond question", "unquestionable",
	},
}

var weaselPhrases = []string{
	"some say", "many believe", "experts say", "critics claim", "some people think",
	"it is said", "it has been suggested", "there are those who",
	"sources say", "insiders claim", "according to sources", "observers note",
	"it is widely believed", "many feel", "questions have been raised",
	"concerns have been raised", "some argue", "many argue",
	"studies show", "research shows", "science says",
}

type framingPattern struct {
	re    *regexp.Regexp
	label string
	bias  string
}

var framingPatterns = []framingPattern{
	{regexp.MustCompile(`(?i)\btaxpayer[\s-]?funded\b`), "Financial burden framing", "fiscal-conservative"},
	{regexp.MustCompile(`(?i)\bjob[\s-]?killing\b`), "Anti-regulation framing", "deregulation"},
	{regexp.MustCompile(`(?i)\b(pro[\s-]?life|unborn child|sanctity of life)\b`), "Anti-abortion framing", "socially conservative"},
	{regexp.MustCompile(`(?i)\b(pro[\s-]?choice|reproductive rights|bodily autonomy)\b`), "Pro-choice framing", "socially progressive"},
	{regexp.MustCompile(`(?i)\b(illegal alien|illegals)\b`), "Anti-immigration framing", "restrictionist"},
	{regexp.MustCompile(`(?i)\b(undocumented worker|asylum seeker|dreamer)\b`), "Pro-immigration framing", "permissive"},
	{regexp.MustCompile(`(?i)\b(gun rights|second amendment rights|law[\s-]?abiding gun owner)\b`), "Pro-gun framing", "gun rights"},
	{regexp.MustCompile(`(?i)\b(gun violence epidemic|common[\s-]?sense gun|gun safety)\b`), "Gun control framing", "gun control"},
	{regexp.MustCompile(`(?i)\b(climate alarmis[mt]|climate hoax|so[\s-]?called climate)\b`), "Climate skepticism framing", "climate skeptic"},
	{regexp.MustCompile(`(?i)\b(climate crisis|climate emergency|climate catastrophe)\b`), "Climate urgency framing", "climate action"},
	{regexp.MustCompile(`(?i)\b(mainstream media|liberal media|lamestream|fake news media)\b`), "Media distrust framing", "media skeptic"},
	{regexp.MustCompile(`(?i)\b(big pharma|big tech|big government|deep state|the establishment)\b`), "Anti-establishment framing", "populist"},
	{regexp.MustCompile(`(?i)\b(wealth gap|income inequality|the one percent|working class|exploitation of workers)\b`), "Economic justice framing", "economic-left"},
	{regexp.MustCompile(`(?i)\b(free market solution|job creators|over[\s-]?regulation|nanny state)\b`), "Pro-market framing", "economic-right"},
}

// Passive voice heuristic: a form of "to be" plus a past participle.
// Regular -ed participles are matched generically, irregulars come from a
// curated list.
var passiveRe = regexp.MustCompile(`(?i)\b(was|were|is|are|been|being|be)\s+(\w+ed|taken|given|shown|known|seen|done|made|told|found|left|held|brought|thought|kept|sent|grown|drawn|written|broken|spoken|chosen|driven|forgotten|hidden|bitten|eaten|fallen|risen|born|worn|torn|sworn|frozen|stolen|shaken|woven)\b`)

var terminalPunctRe = regexp.MustCompile(`[.!?]+`)

var leadingQuestionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(isn't it true that|don't you think|wouldn't you agree|isn't it obvious that)\b`),
	regexp.MustCompile(`(?i)\b(how can anyone|why would anyone|who could possibly|who in their right mind)\b`),
}

// phraseRes caches a compiled whole-word matcher per tracked phrase.
var phraseRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	add := func(phrase string) {
		if _, ok := res[phrase]; !ok {
			res[phrase] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
		}
	}
	for _, phrases := range loadedLanguage {
		for _, p := range phrases {
			add(p)
		}
	}
	for _, p := range weaselPhrases {
		add(p)
	}
	return res
}()

// BiasDetector finds loaded language, weasel wording, ideological framing,
// passive voice and leading questions. Stateless and safe for concurrent
// use.
type BiasDetector struct{}

// NewBiasDetector constructs a detector over the built-in phrase tables.
func NewBiasDetector() *BiasDetector {
	return &BiasDetector{}
}

// Analyze scans text and returns the composite bias assessment.
func (d *BiasDetector) Analyze(text string) *models.BiasResult {
	if len(strings.TrimSpace(text)) < 10 {
		return emptyBias()
	}

	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))
	sentenceCount := 0
	for _, s := range terminalPunctRe.Split(text, -1) {
		if len(strings.TrimSpace(s)) > 5 {
			sentenceCount++
		}
	}

	loadedFindings := make(map[string][]models.PhraseCount)
	totalLoaded := 0
	categoryTotals := make(map[string]int)
	for category, phrases := range loadedLanguage {
		var found []models.PhraseCount
		for _, phrase := range phrases {
			n := len(phraseRes[phrase].FindAllStringIndex(lower, -1))
			if n > 0 {
				found = append(found, models.PhraseCount{Phrase: phrase, Count: n})
				totalLoaded += n
				categoryTotals[category] += n
			}
		}
		if len(found) > 0 {
			loadedFindings[category] = found
		}
	}

	var weaselFindings []models.PhraseCount
	weaselTotal := 0
	for _, phrase := range weaselPhrases {
		n := len(phraseRes[phrase].FindAllStringIndex(lower, -1))
		if n > 0 {
			weaselFindings = append(weaselFindings, models.PhraseCount{Phrase: phrase, Count: n})
			weaselTotal += n
		}
	}

	var framingFindings []models.FramingMatch
	for _, fp := range framingPatterns {
		matches := fp.re.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		trimmed := make([]string, len(matches))
		for i, m := range matches {
			trimmed[i] = strings.TrimSpace(m)
		}
		framingFindings = append(framingFindings, models.FramingMatch{
			Label:    fp.label,
			Bias:     fp.bias,
			Count:    len(matches),
			Examples: capStrings(uniqueStrings(trimmed), 3),
		})
	}

	passiveCount := len(passiveRe.FindAllString(text, -1))
	passiveDensity := 0
	if sentenceCount > 0 {
		passiveDensity = int(math.Round(float64(passiveCount) / float64(sentenceCount) * 100))
	}

	var leading []string
	for _, re := range leadingQuestionRes {
		for _, m := range re.FindAllString(text, -1) {
			leading = append(leading, strings.TrimSpace(m))
		}
	}
	leadingTotal := len(leading)
	leading = capStrings(uniqueStrings(leading), 5)

	posLoaded := categoryTotals["glorification"]
	negLoaded := categoryTotals["demonization"] + categoryTotals["fear_mongering"]

	balance := "Balanced"
	if posLoaded+negLoaded >= 2 {
		ratio := float64(posLoaded+1) / float64(negLoaded+1)
		switch {
		case ratio > 3:
			balance = "Heavily positive framing"
		case ratio > 1.8:
			balance = "Leans positive"
		case ratio < 0.33:
			balance = "Heavily negative framing"
		case ratio < 0.55:
			balance = "Leans negative"
		}
	}

	absolutist := categoryTotals["absolutist"]

	loadedDensity := float64(totalLoaded) / float64(wordCount) * 100
	weaselDensity := float64(weaselTotal) / float64(wordCount) * 100

	passiveBonus := 0.0
	if passiveDensity > 40 {
		passiveBonus = 8
	} else if passiveDensity > 20 {
		passiveBonus = 4
	}

	raw := loadedDensity*6 +
		weaselDensity*10 +
		float64(len(framingFindings))*5 +
		float64(absolutist)/float64(wordCount)*400 +
		passiveBonus +
		float64(leadingTotal)*4
	score := clampInt(int(math.Round(raw)), 0, 100)

	return &models.BiasResult{
		BiasScore:        score,
		BiasLabel:        biasLabel(score),
		BalanceLabel:     balance,
		LoadedLanguage:   loadedFindings,
		TotalLoadedCount: totalLoaded,
		WeaselWords:      weaselFindings,
		Framing:          framingFindings,
		PassiveVoice:     models.PassiveVoiceStats{Count: passiveCount, Density: passiveDensity},
		LeadingQuestions: leading,
		AbsolutistCount:  absolutist,
		WordCount:        wordCount,
	}
}

func biasLabel(score int) string {
	switch {
	case score < 15:
		return "Low Bias"
	case score < 35:
		return "Mild Bias"
	case score < 55:
		return "Moderate Bias"
	case score < 75:
		return "High Bias"
	default:
		return "Very High Bias"
	}
}

func emptyBias() *models.BiasResult {
	return &models.BiasResult{
		BiasLabel:        "Low Bias",
		BalanceLabel:     "Balanced",
		LoadedLanguage:   map[string][]models.PhraseCount{},
		WeaselWords:      []models.PhraseCount{},
		Framing:          []models.FramingMatch{},
		LeadingQuestions: []string{},
	}
}
