package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconAnnotator_Annotate(t *testing.T) {
	a := NewLexiconAnnotator()

	ann, err := a.Annotate(context.Background(), "Experience with machine learning and Python.")
	require.NoError(t, err)

	var texts, tags []string
	for _, tok := range ann.Tokens {
		texts = append(texts, tok.Text)
		tags = append(tags, tok.POS)
	}
	assert.Equal(t, []string{"Experience", "with", "machine", "learning", "and", "Python", "."}, texts)
	assert.Equal(t, []string{POSNoun, POSOther, POSNoun, POSNoun, POSOther, POSNoun, POSPunctuation}, tags)
	assert.True(t, ann.Tokens[1].IsStop)
	assert.False(t, ann.Tokens[0].IsStop)

	require.Len(t, ann.Chunks, 1)
	assert.Equal(t, Chunk{Text: "machine learning", RootPOS: POSNoun}, ann.Chunks[0])
}

func TestLexiconAnnotator_ChunkEndsInNoun(t *testing.T) {
	ann, err := NewLexiconAnnotator().Annotate(context.Background(), "strong communication skills, senior")
	require.NoError(t, err)

	require.Len(t, ann.Chunks, 1)
	assert.Equal(t, "strong communication skills", ann.Chunks[0].Text)
}

func TestLexiconAnnotator_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  []string
		lemma []string
		pos   []string
	}{
		{
			name:  "dotted and symbolic words",
			input: "node.js C++ C#",
			text:  []string{"node.js", "C++", "C#"},
			lemma: []string{"node.js", "c++", "c#"},
			pos:   []string{POSNoun, POSNoun, POSNoun},
		},
		{
			name:  "plurals and numbers",
			input: "5 years, databases",
			text:  []string{"5", "years", ",", "databases"},
			lemma: []string{"5", "year", ",", "database"},
			pos:   []string{POSNumber, POSNoun, POSPunctuation, POSNoun},
		},
		{
			name:  "verbs adjectives adverbs",
			input: "developed scalable quickly",
			text:  []string{"developed", "scalable", "quickly"},
			lemma: []string{"developed", "scalable", "quickly"},
			pos:   []string{POSVerb, POSAdjective, POSAdverb},
		},
		{
			name:  "ies plural",
			input: "technologies",
			text:  []string{"technologies"},
			lemma: []string{"technology"},
			pos:   []string{POSNoun},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann, err := NewLexiconAnnotator().Annotate(context.Background(), tt.input)
			require.NoError(t, err)

			var text, lemma, pos []string
			for _, tok := range ann.Tokens {
				text = append(text, tok.Text)
				lemma = append(lemma, tok.Lemma)
				pos = append(pos, tok.POS)
			}
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.lemma, lemma)
			assert.Equal(t, tt.pos, pos)
		})
	}
}

func TestLexiconAnnotator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLexiconAnnotator().Annotate(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLexiconAnnotator_Empty(t *testing.T) {
	ann, err := NewLexiconAnnotator().Annotate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, ann.Tokens)
	assert.Empty(t, ann.Chunks)
}
