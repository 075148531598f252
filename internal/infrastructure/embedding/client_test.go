package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-translate-api/internal/config"
)

func newTestClient(endpoint string, dimension int) *Client {
	return NewClient(&config.EmbeddingConfig{
		Endpoint: endpoint,
		Model:    "nomic-embed-text",
		Timeout:  5 * time.Second,
	}, dimension)
}

func TestEmbed_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "林动", req.Prompt)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float32{0.1, 0.2, 0.3},
		})
	}))
	defer srv.Close()

	vec, err := newTestClient(srv.URL, 3).Embed(context.Background(), "林动")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float32{0.1, 0.2},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 768).Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected embedding dimension")
}

func TestEmbed_EmptyEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding response is empty")
}

func TestEmbed_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestEmbed_EmptyEndpoint(t *testing.T) {
	_, err := newTestClient("", 0).Embed(context.Background(), "text")
	require.Error(t, err)
}
