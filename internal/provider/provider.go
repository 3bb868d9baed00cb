package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// Provider defines the interface for external analysis backends. Providers
// are stateless from the engine's perspective; availability can change
// between calls (revoked credential, service outage), so IsAvailable is
// re-checked per request rather than cached.
type Provider interface {
	// Name returns the provider name used for routing and cache keys.
	Name() string

	// Capabilities returns the content types this provider can analyze.
	Capabilities() []model.ContentType

	// IsAvailable reports whether the provider is configured and reachable
	// enough to attempt a call.
	IsAvailable(ctx context.Context) bool

	// Call issues one analysis request. Errors are classified via
	// Transient/Permanent wrappers for the router's retry policy.
	Call(ctx context.Context, req Request) (*Response, error)
}

// Request is one unit of work sent to a provider.
type Request struct {
	Content     []byte
	ContentType model.ContentType
	Task        model.Task
}

// Response is a provider's answer. Analysis always holds a JSON object:
// when the model returned unstructured text, the raw text is wrapped under
// the "analysis" key.
type Response struct {
	Analysis   map[string]interface{}
	Raw        string
	Model      string
	TokensUsed int
}

// CanHandle reports whether the provider covers the given content type.
func CanHandle(p Provider, ct model.ContentType) bool {
	for _, c := range p.Capabilities() {
		if c == ct {
			return true
		}
	}
	return false
}

// ParseAnalysis extracts a JSON object from model output. Models sometimes
// wrap the object in prose or code fences; take the outermost braces. On
// failure the raw text is preserved under "analysis".
func ParseAnalysis(text string) map[string]interface{} {
	jsonText := text
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		jsonText = text[start : end+1]
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return map[string]interface{}{"analysis": strings.TrimSpace(text)}
	}
	return parsed
}

// BuildPrompt constructs the system and user prompts for a task.
func BuildPrompt(req Request) (system string, user string) {
	content := string(req.Content)

	switch req.Task {
	case model.TaskFactCheck:
		system = "You are an assistant that verifies factual claims. " +
			"Return only a JSON object with keys: verdict (\"true\", \"false\" or \"unknown\"), " +
			"confidence (0.0-1.0), facts (list of short supporting statements)."
		user = fmt.Sprintf("Verify the following claim and return the JSON: \"\"\"%s\"\"\"", content)
	case model.TaskSummarize:
		system = "You are an assistant that summarizes content. " +
			"Return only a JSON object with keys: summary (string), key_points (list of strings)."
		user = fmt.Sprintf("Summarize the following content and return the JSON: \"\"\"%s\"\"\"", content)
	default:
		system = "You are an assistant that analyzes content credibility. " +
			"Return only a JSON object with keys: score (0-100), probability (0.0-1.0 likelihood the " +
			"content is AI-generated), flags (list of strings), summary (list of short phrases)."
		user = fmt.Sprintf("Analyze the following %s content for credibility and return the JSON: \"\"\"%s\"\"\"", req.ContentType, content)
	}
	return system, user
}
