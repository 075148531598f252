// Package generation 提供文本生成服务客户端
package generation

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

var tracer = otel.Tracer("generation")

// Client Ollama 风格的生成服务客户端。
// 始终使用非流式调用：整段译文一次返回，超时由 HTTP 客户端兜底。
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewClient 创建生成服务客户端
func NewClient(cfg *config.GenerationConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "qwen2.5:3b"
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate 调用生成服务，返回完整生成文本
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "generation.Generate",
		trace.WithAttributes(
			attribute.String("model", c.model),
			attribute.Int("prompt_length", len(prompt)),
		))
	defer span.End()

	start := time.Now()
	text, err := c.doGenerate(ctx, prompt)
	metrics.GenerationCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.GenerationCallTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.GenerationCallTotal.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("response_length", len(text)))
	return text, nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(&generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	endpoint := strings.TrimRight(c.endpoint, "/")
	if endpoint == "" {
		return "", fmt.Errorf("generation endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid generation endpoint: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/api/generate"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", fmt.Errorf("generation request failed: status=%d", httpResp.StatusCode)
	}

	var resp generateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	if strings.TrimSpace(resp.Response) == "" {
		return "", fmt.Errorf("generation response is empty")
	}

	return resp.Response, nil
}
