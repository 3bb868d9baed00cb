package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/filterize/credengine/internal/model"
)

// OllamaProvider implements the Provider interface for local Ollama models.
type OllamaProvider struct {
	baseURL    string
	mdl        string
	httpClient *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(cfg model.OllamaConfig) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	mdl := cfg.Model
	if mdl == "" {
		mdl = "llama3.1"
	}

	return &OllamaProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		mdl:        mdl,
		httpClient: &http.Client{},
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string { return "ollama" }

// Capabilities returns the content types this provider handles.
func (p *OllamaProvider) Capabilities() []model.ContentType {
	return []model.ContentType{model.ContentText, model.ContentURL}
}

// IsAvailable pings the local daemon with a short deadline.
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(pingCtx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Call issues one generate request and parses the JSON payload.
func (p *OllamaProvider) Call(ctx context.Context, req Request) (*Response, error) {
	system, user := BuildPrompt(req)

	body, err := json.Marshal(ollamaRequest{
		Model:  p.mdl,
		Prompt: user,
		System: system,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1,
			NumPredict:  300,
		},
	})
	if err != nil {
		return nil, Permanent(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, Permanent(fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, Transient(fmt.Errorf("ollama request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode >= 500 {
			return nil, Transient(err)
		}
		return nil, Permanent(err)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, Transient(fmt.Errorf("decode response: %w", err))
	}

	raw := strings.TrimSpace(parsed.Response)
	return &Response{
		Analysis:   ParseAnalysis(raw),
		Raw:        raw,
		Model:      parsed.Model,
		TokensUsed: parsed.PromptEvalCount + parsed.EvalCount,
	}, nil
}
