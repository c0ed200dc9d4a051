package stopwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStopWord(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"The", true},
		{"system", true},
		{"go", true},
		{"python", false},
		{"engineer", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStopWord(tt.word))
		})
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 318, Len())
}
