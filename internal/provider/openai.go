package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/filterize/credengine/internal/model"
)

// OpenAIProvider implements the Provider interface for OpenAI models.
type OpenAIProvider struct {
	client *openai.Client
	cfg    model.OpenAIConfig
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg model.OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

// Capabilities returns the content types this provider handles.
func (p *OpenAIProvider) Capabilities() []model.ContentType {
	return []model.ContentType{model.ContentText, model.ContentURL}
}

// IsAvailable checks the credential without spending an API call; a bad
// key surfaces as a permanent error on the first Call.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	return p.cfg.APIKey != ""
}

// Call issues one chat completion and parses the JSON payload.
func (p *OpenAIProvider) Call(ctx context.Context, req Request) (*Response, error) {
	system, user := BuildPrompt(req)

	mdl := p.cfg.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	chatReq := openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   300,
		Temperature: 0.1,
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, Transient(fmt.Errorf("no response from OpenAI"))
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	return &Response{
		Analysis:   ParseAnalysis(raw),
		Raw:        raw,
		Model:      mdl,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return Transient(err)
		}
		if apiErr.HTTPStatusCode >= 400 {
			return Permanent(err)
		}
	}
	return Transient(err)
}
