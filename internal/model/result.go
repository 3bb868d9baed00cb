package model

import "time"

// CredibilityResult is the fused output of a detector set, optionally
// enriched by an external provider. A new analysis always produces a new
// result; results are never mutated after creation.
type CredibilityResult struct {
	Probability  float64  `json:"probability"` // 0.0-1.0, weight-normalized
	Confidence   float64  `json:"confidence"`  // 0.0-1.0, fired/total detectors
	MethodsUsed  []string `json:"methods_used"`
	Flags        []string `json:"flags,omitempty"`
	Explanation  string   `json:"explanation"`

	// ProviderUsed names the external provider that served the request,
	// with a " (fallback)" suffix when a non-primary provider answered.
	// Empty when only local detectors ran.
	ProviderUsed string `json:"provider_used,omitempty"`

	// ProviderAnalysis carries the provider's parsed payload, or the raw
	// text under "analysis" when the payload was not valid JSON.
	ProviderAnalysis map[string]interface{} `json:"provider_analysis,omitempty"`

	RequestID  string    `json:"request_id,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at,omitempty"`
	Cached     bool      `json:"cached,omitempty"`
}

// FactCheckResult is the outcome of a fact-check pass over text content.
// Every extracted claim appears in exactly one of VerifiedClaims or
// DisputedClaims.
type FactCheckResult struct {
	Score           int                  `json:"score"` // 0-100
	VerifiedClaims  []VerificationResult `json:"verified_claims"`
	DisputedClaims  []VerificationResult `json:"disputed_claims"`
	RelatedArticles []Article            `json:"related_articles"`

	RequestID string    `json:"request_id,omitempty"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
	Cached    bool      `json:"cached,omitempty"`
}
