package stemmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemLatin(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"running", "runn"},
		{"cats", "cat"},
		{"indexing", "index"},
		{"computational", "computate"},
		{"cities", "city"},
		{"workers", "worker"},
		{"played", "play"},
		{"quickly", "quick"},
		{"glass", "glass"},
		{"go", "go"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.word))
		})
	}
}

func TestStemRussian(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"кошки", "кошк"},
		{"собака", "собак"},
		{"столица", "столиц"},
		{"красивый", "красив"},
		{"делавший", "дела"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.word))
		})
	}
}

func TestStemRussianSameStemForInflections(t *testing.T) {
	// different cases of the same noun must collapse to one stem
	forms := []string{"москва", "москвы", "москве", "москву"}
	want := Stem(forms[0])
	for _, form := range forms[1:] {
		assert.Equal(t, want, Stem(form), "form %q", form)
	}
}

func TestStemYoFoldsToYe(t *testing.T) {
	assert.Equal(t, Stem("елка"), Stem("ёлка"))
}

func TestStemDigitsPassThrough(t *testing.T) {
	assert.Equal(t, "1147", Stem("1147"))
}

func TestStemEmpty(t *testing.T) {
	assert.Equal(t, "", Stem(""))
}

func TestStemShortRussianWordsUntouched(t *testing.T) {
	// no vowel, or vowel at the very end: nothing strippable
	assert.Equal(t, "в", Stem("в"))
	assert.Equal(t, "мг", Stem("мг"))
}
