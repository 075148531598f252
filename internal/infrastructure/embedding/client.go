// Package embedding 提供嵌入服务客户端
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-translate-api/internal/config"
	"novel-translate-api/pkg/metrics"
)

var tracer = otel.Tracer("embedding")

// Client Ollama 风格的嵌入服务客户端
type Client struct {
	endpoint   string
	model      string
	dimension  int
	httpClient *http.Client
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewClient 创建嵌入服务客户端
func NewClient(cfg *config.EmbeddingConfig, dimension int) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "nomic-embed-text"
	}
	return &Client{
		endpoint:  cfg.Endpoint,
		model:     model,
		dimension: dimension,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Embed 计算单段文本的嵌入向量
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, span := tracer.Start(ctx, "embedding.Embed",
		trace.WithAttributes(attribute.String("model", c.model)))
	defer span.End()

	start := time.Now()
	vec, err := c.doEmbed(ctx, text)
	metrics.EmbeddingCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.EmbeddingCallTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.EmbeddingCallTotal.WithLabelValues("success").Inc()
	return vec, nil
}

func (c *Client) doEmbed(ctx context.Context, text string) ([]float32, error) {
	reqBody, err := json.Marshal(&embedRequest{
		Model:  c.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	endpoint := strings.TrimRight(c.endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid embedding endpoint: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/api/embeddings"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedding request failed: status=%d", httpResp.StatusCode)
	}

	var resp embedResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}

	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("embedding response is empty")
	}
	if c.dimension > 0 && len(resp.Embedding) != c.dimension {
		return nil, fmt.Errorf("unexpected embedding dimension: got %d, want %d", len(resp.Embedding), c.dimension)
	}

	return resp.Embedding, nil
}
