package generation

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

func newTestClient(endpoint string) *Client {
	return NewClient(&config.GenerationConfig{
		Endpoint: endpoint,
		Model:    "qwen2.5:3b",
		Timeout:  5 * time.Second,
	})
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5:3b", req.Model)
		assert.False(t, req.Stream)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": "Lin Dong was just a frog at the bottom of a well.",
			"done":     true,
		})
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Lin Dong was just a frog at the bottom of a well.", text)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "   ", "done": true})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation response is empty")
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "late", "done": true})
	}))
	defer srv.Close()

	client := NewClient(&config.GenerationConfig{
		Endpoint: srv.URL,
		Timeout:  50 * time.Millisecond,
	})

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
}
