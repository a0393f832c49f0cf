package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"stop words and punctuation", "Can I bring my dog?", "bring dog"},
		{"contraction", "What's the weather today?", "weather today"},
		{"plural and participle", "Are pets allowed?", "pet allow"},
		{"only stop words", "Is it there, or not?!", ""},
		{"empty", "", ""},
		{"punctuation only", "?!... --", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotentOnNormalizedText(t *testing.T) {
	for _, in := range []string{
		"Is the washer and dryer included?",
		"Do you have a dryer?",
		"Is it dry in the basement?",
		"When can I schedule a house viewing?",
		"Are there security cameras?",
		"Is the apartment heated in winter?",
		"Can my friends stay overnight?",
		"Is subleasing permitted?",
	} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestTokensAreSingleWords(t *testing.T) {
	for _, tok := range Tokens("Is the washer and dryer included? Is it dry? Any spin-drying?") {
		assert.Equal(t, []string{tok}, split(tok), tok)
	}
}

func TestTokensNeverContainStopWords(t *testing.T) {
	for _, tok := range Tokens("When can I schedule a house viewing? I'd like to see it this week.") {
		_, stop := stopWords[tok]
		assert.False(t, stop, "stop word %q leaked", tok)
	}
}
