package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "punctuation stripped",
			text: "Hello, World!",
			want: []string{"hello", "world"},
		},
		{
			name: "contractions survive",
			text: "Don't stop believing",
			want: []string{"don't", "stop", "believing"},
		},
		{
			name: "curly quotes normalized",
			text: "It’s fine",
			want: []string{"it's", "fine"},
		},
		{
			name: "numbers dropped",
			text: "version 2 shipped",
			want: []string{"version", "shipped"},
		},
		{
			name: "empty input",
			text: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three sentences",
			text: "First sentence here. Second one follows! Is this the third?",
			want: []string{"First sentence here.", "Second one follows!", "Is this the third?"},
		},
		{
			name: "decimal point not a boundary",
			text: "The rate rose 3.5 percent. Analysts were surprised.",
			want: []string{"The rate rose 3.5 percent.", "Analysts were surprised."},
		},
		{
			name: "trailing text without punctuation",
			text: "Complete sentence. trailing fragment",
			want: []string{"Complete sentence.", "trailing fragment"},
		},
		{
			name: "tiny fragments dropped",
			text: "A. Proper sentence follows here.",
			want: []string{"Proper sentence follows here."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1},
		{"table", 2},
		{"walked", 1},
		{"wanted", 2},
		{"strength", 1},
		{"syllable", 3},
		{"beautiful", 3}, // exception table
		{"idea", 3},      // exception table
		{"a", 1},
		{"rhythm", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := countSyllables(tt.word); got != tt.want {
				t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestUniqueStrings(t *testing.T) {
	got := uniqueStrings([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uniqueStrings = %v, want %v", got, want)
	}
}

func TestCapStrings(t *testing.T) {
	in := []string{"a", "b", "c"}
	if got := capStrings(in, 2); len(got) != 2 {
		t.Errorf("capStrings cap = %v", got)
	}
	if got := capStrings(in, 5); len(got) != 3 {
		t.Errorf("capStrings under cap = %v", got)
	}
}
