// Package tfidf fits a small TF-IDF model over a handful of documents.
//
// The weighting follows the common "smooth idf" formulation: raw term counts,
// idf = ln((1+n)/(1+df)) + 1 and L2-normalized rows. Terms are unigrams and
// bigrams of lowercase word tokens of at least two characters with English
// stop words removed before the bigrams are formed.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"resumatch/internal/stopwords"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 1000

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokens lowercases doc and returns its non-stop word tokens in order.
func Tokens(doc string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	out := words[:0]
	for _, w := range words {
		if !stopwords.IsStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// Analyze returns the unigram and bigram terms of doc, unigrams first.
func Analyze(doc string) []string {
	tokens := Tokens(doc)
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// Model is a fitted vocabulary with one weighted row per input document.
type Model struct {
	vocabulary []string
	index      map[string]int
	rows       [][]float64
}

// Fit builds a model over docs keeping at most maxFeatures terms, the most frequent
// across the corpus first, ties broken alphabetically. A non-positive maxFeatures
// keeps every term.
func Fit(docs []string, maxFeatures int) *Model {
	counts := make([]map[string]int, len(docs))
	total := make(map[string]int)
	df := make(map[string]int)
	for i, d := range docs {
		c := make(map[string]int)
		for _, term := range Analyze(d) {
			c[term]++
			total[term]++
		}
		for term := range c {
			df[term]++
		}
		counts[i] = c
	}

	vocab := make([]string, 0, len(total))
	for term := range total {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	if maxFeatures > 0 && len(vocab) > maxFeatures {
		sort.SliceStable(vocab, func(a, b int) bool { return total[vocab[a]] > total[vocab[b]] })
		vocab = vocab[:maxFeatures]
		sort.Strings(vocab)
	}

	m := &Model{
		vocabulary: vocab,
		index:      make(map[string]int, len(vocab)),
		rows:       make([][]float64, len(docs)),
	}
	for j, term := range vocab {
		m.index[term] = j
	}

	n := float64(len(docs))
	for i, c := range counts {
		row := make([]float64, len(vocab))
		var norm float64
		for j, term := range vocab {
			tf := c[term]
			if tf == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			row[j] = float64(tf) * idf
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		m.rows[i] = row
	}
	return m
}

// Vocabulary returns the fitted terms in alphabetical order.
func (m *Model) Vocabulary() []string {
	return m.vocabulary
}

// Weight returns the weight of term in document row and whether term is in the vocabulary.
func (m *Model) Weight(row int, term string) (float64, bool) {
	j, ok := m.index[term]
	if !ok || row < 0 || row >= len(m.rows) {
		return 0, false
	}
	return m.rows[row][j], true
}

// Cosine returns the cosine similarity of two document rows. Rows are unit length
// or all zero, so this is their dot product.
func (m *Model) Cosine(a, b int) float64 {
	if a < 0 || b < 0 || a >= len(m.rows) || b >= len(m.rows) {
		return 0
	}
	var dot float64
	for j := range m.vocabulary {
		dot += m.rows[a][j] * m.rows[b][j]
	}
	return dot
}
