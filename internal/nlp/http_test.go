package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPAnnotator_Annotate(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		wantErr error
		want    *Annotation
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req annotateRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				if req.Text != "Go developer" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"tokens":[{"text":"Go","lemma":"go","pos":"PROPN","is_stop":true},` +
					`{"text":"developer","lemma":"developer","pos":"NOUN","is_stop":false}],` +
					`"noun_chunks":[{"text":"Go developer","root_pos":"NOUN","root_is_stop":false}]}`))
			},
			want: &Annotation{
				Tokens: []Token{
					{Text: "Go", Lemma: "go", POS: POSProperNoun, IsStop: true},
					{Text: "developer", Lemma: "developer", POS: POSNoun},
				},
				Chunks: []Chunk{{Text: "Go developer", RootPOS: POSNoun}},
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ErrAnnotationUnavailable,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"tokens":`))
			},
			wantErr: ErrAnnotationUnavailable,
		},
		{
			name: "slow service",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			wantErr: ErrAnnotationTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := NewHTTPAnnotator(srv.URL, tt.timeout)
			got, err := a.Annotate(context.Background(), "Go developer")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPAnnotator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPAnnotator(url, time.Second).Annotate(context.Background(), "text")
	assert.ErrorIs(t, err, ErrAnnotationUnavailable)
}
