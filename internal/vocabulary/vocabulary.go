// Package vocabulary derives the keyword vocabulary used by the keyword
// encoding strategy from the free-text function column of a training set.
package vocabulary

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MinWordLength is the shortest token, in characters, kept as a keyword.
const MinWordLength = 3

// stopwords are frequent Portuguese words that carry no signal about an
// item's function.
var stopwords = map[string]struct{}{
	"para": {}, "com": {}, "por": {}, "das": {}, "dos": {},
	"uma": {}, "uns": {}, "que": {}, "são": {}, "ter": {},
}

// Vocabulary is an ordered list of distinct keywords. It is immutable once
// built; the same value must be reused to encode every dataset that feeds
// one model.
type Vocabulary struct {
	words []string
}

// Build returns the sorted vocabulary of texts. The result depends only on
// the multiset of tokens, never on input order.
func Build(texts []string) Vocabulary {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, token := range Tokenize(text) {
			if utf8.RuneCountInString(token) < MinWordLength {
				continue
			}
			if _, stop := stopwords[token]; stop {
				continue
			}
			seen[token] = struct{}{}
		}
	}

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return Vocabulary{words: words}
}

// FromWords wraps an already ordered keyword list.
func FromWords(words []string) Vocabulary {
	return Vocabulary{words: append([]string(nil), words...)}
}

// Tokenize lower-cases text, treats commas and periods as separators and
// splits on whitespace.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.NewReplacer(",", " ", ".", " ").Replace(text)
	return strings.Fields(text)
}

// Len is the number of keywords, i.e. the width of the keyword block.
func (v Vocabulary) Len() int { return len(v.words) }

// Words returns a copy of the keywords in vocabulary order.
func (v Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Contains reports whether word is in the vocabulary.
func (v Vocabulary) Contains(word string) bool {
	i := sort.SearchStrings(v.words, word)
	return i < len(v.words) && v.words[i] == word
}

// Indicators returns one 0/1 value per keyword, set when the keyword occurs
// as a substring of the lower-cased text.
func (v Vocabulary) Indicators(text string) []float64 {
	lower := strings.ToLower(text)
	out := make([]float64, len(v.words))
	for i, w := range v.words {
		if strings.Contains(lower, w) {
			out[i] = 1
		}
	}
	return out
}
