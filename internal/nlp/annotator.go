// Package nlp abstracts the linguistic annotation capability used for keyword
// extraction: tokens with part of speech, lemma and stop-word flag, and noun chunks
// with their grammatical head.
package nlp

import (
	"context"
	"errors"
	"time"
)

// Universal part-of-speech tags used by annotators.
const (
	POSNoun        = "NOUN"
	POSProperNoun  = "PROPN"
	POSVerb        = "VERB"
	POSAdjective   = "ADJ"
	POSAdverb      = "ADV"
	POSNumber      = "NUM"
	POSPunctuation = "PUNCT"
	POSOther       = "X"
)

var (
	// ErrAnnotationUnavailable means the annotation backend could not be reached or answered badly.
	ErrAnnotationUnavailable = errors.New("annotation service unavailable")
	// ErrAnnotationTimeout means the annotation backend did not answer in time.
	ErrAnnotationTimeout = errors.New("annotation service timeout")
)

// Token is one annotated word.
type Token struct {
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	POS    string `json:"pos"`
	IsStop bool   `json:"is_stop"`
}

// Chunk is a contiguous noun phrase and the annotation of its head word.
type Chunk struct {
	Text       string `json:"text"`
	RootPOS    string `json:"root_pos"`
	RootIsStop bool   `json:"root_is_stop"`
}

// Annotation is the full output for one text.
type Annotation struct {
	Tokens []Token `json:"tokens"`
	Chunks []Chunk `json:"noun_chunks"`
}

// Annotator annotates free text. Implementations must be safe for concurrent use.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}

// IsNounLike reports whether pos marks a common or proper noun.
func IsNounLike(pos string) bool {
	return pos == POSNoun || pos == POSProperNoun
}

// NewAnnotator returns the HTTP annotator for endpoint, or the in-process lexicon
// annotator when endpoint is empty.
func NewAnnotator(endpoint string, timeout time.Duration) Annotator {
	if endpoint == "" {
		return NewLexiconAnnotator()
	}
	return NewHTTPAnnotator(endpoint, timeout)
}
