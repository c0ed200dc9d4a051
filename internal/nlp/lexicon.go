package nlp

import (
	"context"
	"strings"
	"unicode"

	"resumatch/internal/stopwords"
)

var lexiconVerbs = toSet(
	"achieved", "analyzed", "apply", "applied", "build", "building", "built", "collaborate",
	"collaborated", "create", "created", "deliver", "delivered", "deploy", "deployed", "develop",
	"developed", "developing", "drive", "drove", "ensure", "have", "improve", "improved",
	"implement", "implemented", "join", "lead", "led", "looking", "maintain", "maintained",
	"manage", "managed", "mentor", "mentored", "need", "needs", "optimize", "optimized", "own", "seeking",
	"support", "supported", "work", "worked", "working", "write", "wrote",
)

var lexiconAdjectives = toSet(
	"able", "advanced", "agile", "basic", "deep", "distributed", "excellent", "familiar", "good",
	"great", "hands-on", "high", "junior", "large", "new", "preferred", "proficient", "proven",
	"relevant", "required", "scalable", "senior", "solid", "strong", "technical", "various",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// LexiconAnnotator is an in-process annotator built from word lists and suffix rules.
// It is a fallback for deployments without an annotation service: tokens that are
// not stop words, numbers, punctuation or a known verb, adjective or adverb are nouns,
// and noun chunks are runs of two or more modifiers and nouns ending in a noun.
type LexiconAnnotator struct{}

// NewLexiconAnnotator returns the word-list annotator.
func NewLexiconAnnotator() *LexiconAnnotator {
	return &LexiconAnnotator{}
}

var _ Annotator = (*LexiconAnnotator)(nil)

// Annotate never fails except on a cancelled context.
func (a *LexiconAnnotator) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := tokenize(text)
	out := &Annotation{Tokens: make([]Token, 0, len(words))}
	for _, w := range words {
		out.Tokens = append(out.Tokens, tag(w))
	}
	out.Chunks = chunk(out.Tokens)
	return out, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '-'
}

// tokenize splits text into words and single-rune punctuation tokens. Dots and
// hyphens only stay inside a word ("node.js", "hands-on").
func tokenize(text string) []string {
	var out []string
	var cur strings.Builder

	emit := func() {
		if cur.Len() == 0 {
			return
		}
		w := cur.String()
		cur.Reset()
		trimmed := strings.TrimRight(w, ".-")
		lead := strings.TrimLeft(trimmed, ".-")
		if lead != "" {
			out = append(out, lead)
		}
		if len(trimmed) < len(w) {
			out = append(out, w[len(trimmed):len(trimmed)+1])
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			emit()
		case isWordRune(r):
			cur.WriteRune(r)
		default:
			emit()
			out = append(out, string(r))
		}
	}
	emit()
	return out
}

func tag(word string) Token {
	lower := strings.ToLower(word)
	tok := Token{Text: word, Lemma: lemma(lower), IsStop: stopwords.IsStopWord(lower)}

	switch {
	case isNumber(word):
		tok.POS = POSNumber
	case isPunctuation(word):
		tok.POS = POSPunctuation
	case tok.IsStop:
		tok.POS = POSOther
	case contains(lexiconVerbs, lower):
		tok.POS = POSVerb
	case contains(lexiconAdjectives, lower):
		tok.POS = POSAdjective
	case len(lower) > 4 && strings.HasSuffix(lower, "ly"):
		tok.POS = POSAdverb
	default:
		tok.POS = POSNoun
	}
	return tok
}

func contains(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}

func isNumber(w string) bool {
	hasDigit := false
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == '.' || r == '+' || r == '-':
		default:
			return false
		}
	}
	return hasDigit
}

func isPunctuation(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// lemma strips regular English plural endings from purely alphabetic words.
func lemma(lower string) string {
	for _, r := range lower {
		if !unicode.IsLetter(r) {
			return lower
		}
	}
	switch {
	case len(lower) > 4 && strings.HasSuffix(lower, "ies"):
		return lower[:len(lower)-3] + "y"
	case len(lower) > 3 && strings.HasSuffix(lower, "s") &&
		!strings.HasSuffix(lower, "ss") && !strings.HasSuffix(lower, "us") && !strings.HasSuffix(lower, "is"):
		return lower[:len(lower)-1]
	}
	return lower
}

func chunk(tokens []Token) []Chunk {
	var chunks []Chunk
	start := -1

	closeRun := func(end int) {
		if start < 0 {
			return
		}
		// the head is the last noun in the run
		last := end - 1
		for last >= start && !IsNounLike(tokens[last].POS) {
			last--
		}
		if last-start >= 1 {
			parts := make([]string, 0, last-start+1)
			for _, t := range tokens[start : last+1] {
				parts = append(parts, t.Text)
			}
			chunks = append(chunks, Chunk{
				Text:       strings.Join(parts, " "),
				RootPOS:    tokens[last].POS,
				RootIsStop: tokens[last].IsStop,
			})
		}
		start = -1
	}

	for i, t := range tokens {
		if !t.IsStop && (IsNounLike(t.POS) || t.POS == POSAdjective) {
			if start < 0 {
				start = i
			}
			continue
		}
		closeRun(i)
	}
	closeRun(len(tokens))
	return chunks
}
