package match

import (
	"context"
	"fmt"
	"strings"

	"resumatch/internal/nlp"
)

// Extractor turns free text into an ordered bag of distinct lowercase keywords.
type Extractor struct {
	annotator nlp.Annotator
}

// NewExtractor returns an extractor backed by annotator.
func NewExtractor(annotator nlp.Annotator) *Extractor {
	return &Extractor{annotator: annotator}
}

// Extract collects noun chunks headed by a non-stop noun, then single non-stop nouns
// by lemma. Annotation errors are returned as is and no partial bag is produced.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	ann, err := e.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	bag := make([]string, 0, len(ann.Chunks)+len(ann.Tokens))
	seen := make(map[string]struct{}, cap(bag))
	add := func(k string) {
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		bag = append(bag, k)
	}

	for _, c := range ann.Chunks {
		if nlp.IsNounLike(c.RootPOS) && !c.RootIsStop {
			add(strings.ToLower(strings.TrimSpace(c.Text)))
		}
	}
	for _, t := range ann.Tokens {
		if !nlp.IsNounLike(t.POS) || t.IsStop {
			continue
		}
		if _, ok := seen[strings.ToLower(t.Text)]; ok {
			continue
		}
		lemma := strings.ToLower(strings.TrimSpace(t.Lemma))
		if lemma == "" {
			lemma = strings.ToLower(strings.TrimSpace(t.Text))
		}
		add(lemma)
	}
	return bag, nil
}
