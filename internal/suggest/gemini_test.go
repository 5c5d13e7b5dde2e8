package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiSuggester(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody generateRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_ = json.NewEncoder(w).Encode(generateResponse{
				Candidates: []struct {
					Content content `json:"content"`
				}{
					{Content: content{Parts: []part{{Text: "1. Walk\n2. Breathe\n3. Call a friend"}}}},
				},
			})
		}))
		defer srv.Close()

		g := NewGeminiSuggester(srv.URL, "test-key", "gemini-pro")
		text, err := g.SuggestActivities(context.Background(), "anxious")
		require.NoError(t, err)

		assert.Equal(t, "1. Walk\n2. Breathe\n3. Call a friend", text)
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", gotPath)
		assert.Equal(t, "test-key", gotKey)

		require.Len(t, gotBody.Contents, 1)
		require.Len(t, gotBody.Contents[0].Parts, 1)
		assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "anxious")
		assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Suggest 3 activities")
	})

	t.Run("UpstreamError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := NewGeminiSuggester(srv.URL, "test-key", "gemini-pro")
		_, err := g.SuggestActivities(context.Background(), "sad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("EmptyCandidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		g := NewGeminiSuggester(srv.URL, "test-key", "gemini-pro")
		_, err := g.SuggestActivities(context.Background(), "calm")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no candidates")
	})

	t.Run("Unreachable", func(t *testing.T) {
		g := NewGeminiSuggester("http://127.0.0.1:1", "test-key", "gemini-pro")
		_, err := g.SuggestActivities(context.Background(), "sad")
		assert.Error(t, err)
	})
}
