package analyzer

import "testing"

func TestSourceHighTierDomain(t *testing.T) {
	s := NewSourceCredibilityScorer()

	// 50 baseline +20 tier +15 .gov TLD +2 https.
	got := s.Analyze("https://www.cdc.gov/article", "")
	if got.Score != 87 {
		t.Errorf("score = %d, want 87", got.Score)
	}
	if got.CredibilityLabel != "High Credibility" {
		t.Errorf("label = %q, want High Credibility", got.CredibilityLabel)
	}
	if got.Domain != "cdc.gov" {
		t.Errorf("domain = %q, want cdc.gov", got.Domain)
	}
	if len(got.Signals) != 2 {
		t.Errorf("signals = %+v, want tier and TLD entries", got.Signals)
	}
}

func TestSourceLowTierDomainNoHTTPS(t *testing.T) {
	s := NewSourceCredibilityScorer()

	// 50 baseline -25 tier -5 plain http.
	got := s.Analyze("http://infowars.com/story", "")
	if got.Score != 20 {
		t.Errorf("score = %d, want 20", got.Score)
	}
	if got.CredibilityLabel != "Low Credibility" {
		t.Errorf("label = %q, want Low Credibility", got.CredibilityLabel)
	}
	if len(got.Warnings) != 2 {
		t.Errorf("warnings = %+v, want tier and HTTPS entries", got.Warnings)
	}
}

func TestSourceMediumTierDomain(t *testing.T) {
	s := NewSourceCredibilityScorer()

	got := s.Analyze("https://cnn.com/news", "")
	if got.Score != 57 {
		t.Errorf("score = %d, want 57", got.Score)
	}
	if got.CredibilityLabel != "Mixed Credibility" {
		t.Errorf("label = %q, want Mixed Credibility", got.CredibilityLabel)
	}
}

func TestSourceNoURLNeutral(t *testing.T) {
	s := NewSourceCredibilityScorer()

	got := s.Analyze("", "")
	if got.Score != 50 {
		t.Errorf("score = %d, want neutral 50", got.Score)
	}
	if got.Domain != "unknown" {
		t.Errorf("domain = %q, want unknown", got.Domain)
	}
}

func TestSourceTLDScoring(t *testing.T) {
	s := NewSourceCredibilityScorer()

	got := s.Analyze("https://data.example.gov/report", "")
	if got.Score != 67 {
		t.Errorf("score = %d, want 67 (50 +15 .gov +2 https)", got.Score)
	}
	if len(got.Signals) != 1 || got.Signals[0].Label != "Government/academic domain (.gov)" {
		t.Errorf("signals = %+v, want one .gov entry", got.Signals)
	}

	got = s.Analyze("http://deals.example.click", "")
	if got.Score != 37 {
		t.Errorf("score = %d, want 37 (50 -8 .click -5 http)", got.Score)
	}
	if got.CredibilityLabel != "Low Credibility" {
		t.Errorf("label = %q, want Low Credibility", got.CredibilityLabel)
	}
}

func TestSourceContentPositiveSignals(t *testing.T) {
	s := NewSourceCredibilityScorer()

	text := "According to a peer-reviewed journal, 45 percent of respondents agreed. " +
		"However, critics argue otherwise. Written by Jane Roe. Published March 3, 2024."

	// Evidence citation capped at 2x weight (+6), academic +3, balanced
	// perspective capped (+8), quantitative +2, author +3, date +2.
	got := s.Analyze("", text)
	if got.Score != 74 {
		t.Errorf("score = %d, want 74", got.Score)
	}
	if got.CredibilityLabel != "Moderate Credibility" {
		t.Errorf("label = %q, want Moderate Credibility", got.CredibilityLabel)
	}
	if len(got.Signals) != 6 {
		t.Errorf("got %d signals %+v, want 6", len(got.Signals), got.Signals)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", got.Warnings)
	}
}

func TestSourceContentNegativeSignals(t *testing.T) {
	s := NewSourceCredibilityScorer()

	text := "WAKE UP SHEEPLE!!! The shocking truth they don't want you to know about " +
		"this miracle cure. Do your own research before the cover-up spreads."

	// Conspiracy -10, pseudoscience -4, media distrust -4, bad-faith -10,
	// caps -1, punctuation -2.
	got := s.Analyze("", text)
	if got.Score != 19 {
		t.Errorf("score = %d, want 19", got.Score)
	}
	if got.CredibilityLabel != "Very Low Credibility" {
		t.Errorf("label = %q, want Very Low Credibility", got.CredibilityLabel)
	}
	if len(got.Warnings) != 6 {
		t.Errorf("got %d warnings %+v, want 6", len(got.Warnings), got.Warnings)
	}
}

// Signals inside short text are ignored entirely.
func TestSourceShortTextSkipsContentSignals(t *testing.T) {
	s := NewSourceCredibilityScorer()

	got := s.Analyze("", "miracle cure!!!")
	if got.Score != 50 {
		t.Errorf("score = %d, want 50", got.Score)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", got.Warnings)
	}
}

func TestHostnameOf(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.bbc.com/news", "bbc.com"},
		{"http://npr.org", "npr.org"},
		{"bbc.com", "bbc.com"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		if got := hostnameOf(tt.raw); got != tt.want {
			t.Errorf("hostnameOf(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCredibilityLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{85, "High Credibility"},
		{80, "High Credibility"},
		{79, "Moderate Credibility"},
		{60, "Moderate Credibility"},
		{59, "Mixed Credibility"},
		{40, "Mixed Credibility"},
		{39, "Low Credibility"},
		{20, "Low Credibility"},
		{19, "Very Low Credibility"},
	}

	for _, tt := range tests {
		if got := credibilityLabel(tt.score); got != tt.want {
			t.Errorf("credibilityLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
