package analyzer

import (
	"strings"
	"testing"
)

func TestBiasLoadedLanguage(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("The radical extremist is a threat to democracy. Our hero stood firm against the tyrant.")

	demon := got.LoadedLanguage["demonization"]
	if len(demon) == 0 {
		t.Fatal("Expected demonization findings")
	}
	phrases := make(map[string]int)
	for _, pc := range demon {
		phrases[pc.Phrase] = pc.Count
	}
	for _, want := range []string{"radical", "extremist", "tyrant", "threat to democracy"} {
		if phrases[want] != 1 {
			t.Errorf("Expected demonization phrase %q once, got %v", want, phrases)
		}
	}

	glor := got.LoadedLanguage["glorification"]
	if len(glor) != 1 { // hero
		t.Errorf("Expected 1 glorification phrase, got %v", glor)
	}

	if got.TotalLoadedCount != 5 {
		t.Errorf("TotalLoadedCount = %d, want 5", got.TotalLoadedCount)
	}

	// 1 positive vs 4 negative: ratio (1+1)/(4+1) = 0.4
	if got.BalanceLabel != "Leans negative" {
		t.Errorf("BalanceLabel = %q, want Leans negative", got.BalanceLabel)
	}
}

func TestBiasWeaselWords(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("Experts say the plan is flawed. Critics claim it cannot work, and many believe the costs were understated by the agency.")

	if len(got.WeaselWords) != 3 {
		t.Fatalf("Expected 3 weasel phrases, got %v", got.WeaselWords)
	}
	want := map[string]bool{"experts say": true, "critics claim": true, "many believe": true}
	for _, pc := range got.WeaselWords {
		if !want[pc.Phrase] {
			t.Errorf("Unexpected weasel phrase %q", pc.Phrase)
		}
	}
}

func TestBiasFraming(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("The taxpayer-funded program drew fire from job creators, while activists warned of a climate emergency driven by big tech.")

	labels := make(map[string]string)
	for _, f := range got.Framing {
		labels[f.Label] = f.Bias
	}

	if labels["Financial burden framing"] != "fiscal-conservative" {
		t.Errorf("Expected financial burden framing, got %v", labels)
	}
	if labels["Pro-market framing"] != "economic-right" {
		t.Errorf("Expected pro-market framing, got %v", labels)
	}
	if labels["Climate urgency framing"] != "climate action" {
		t.Errorf("Expected climate urgency framing, got %v", labels)
	}
	if labels["Anti-establishment framing"] != "populist" {
		t.Errorf("Expected anti-establishment framing, got %v", labels)
	}
}

func TestBiasPassiveVoice(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("Mistakes were made during the rollout. The report was written by consultants. Decisions are taken behind closed doors.")

	if got.PassiveVoice.Count != 3 {
		t.Errorf("PassiveVoice.Count = %d, want 3", got.PassiveVoice.Count)
	}
	if got.PassiveVoice.Density != 100 {
		t.Errorf("PassiveVoice.Density = %d, want 100", got.PassiveVoice.Density)
	}
}

func TestBiasLeadingQuestions(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("Isn't it true that the numbers were inflated? Wouldn't you agree the public deserves better? How can anyone defend this record?")

	if len(got.LeadingQuestions) != 3 {
		t.Errorf("LeadingQuestions = %v, want 3 entries", got.LeadingQuestions)
	}
	if got.BiasScore == 0 {
		t.Error("Expected non-zero bias score with leading questions present")
	}
}

func TestBiasAbsolutistLanguage(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("This policy always fails and never helps anyone. Everyone knows it is impossible to enforce, and nobody supports it.")

	// always, never, everyone knows, impossible, nobody
	if got.AbsolutistCount != 5 {
		t.Errorf("AbsolutistCount = %d, want 5", got.AbsolutistCount)
	}
	if got.BiasScore < 35 {
		t.Errorf("Expected at least moderate bias score, got %d", got.BiasScore)
	}
}

func TestBiasNeutralText(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("The council approved the budget on Thursday. Construction begins in March and finishes before the school year starts.")

	if got.BiasScore != 0 {
		t.Errorf("BiasScore = %d, want 0", got.BiasScore)
	}
	if got.BiasLabel != "Low Bias" {
		t.Errorf("BiasLabel = %q, want Low Bias", got.BiasLabel)
	}
	if got.BalanceLabel != "Balanced" {
		t.Errorf("BalanceLabel = %q, want Balanced", got.BalanceLabel)
	}
}

func TestBiasShortInput(t *testing.T) {
	d := NewBiasDetector()

	got := d.Analyze("tyrant")
	if got.BiasScore != 0 || got.TotalLoadedCount != 0 {
		t.Errorf("Expected empty result for short input, got %+v", got)
	}
}

func TestBiasHeavilyNegativeBalance(t *testing.T) {
	d := NewBiasDetector()

	text := strings.Repeat("The monster and the predator joined the thug and the tyrant. ", 2)
	got := d.Analyze(text)

	// 0 positive vs 8 negative: ratio 1/9
	if got.BalanceLabel != "Heavily negative framing" {
		t.Errorf("BalanceLabel = %q, want Heavily negative framing", got.BalanceLabel)
	}
}
