package model

// Claim represents a factual assertion extracted from text content. Claims
// are scoped to a single fact-check request and do not outlive it.
type Claim struct {
	Text      string `json:"text"`                // The claim text itself
	Heuristic string `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "pattern:according_to")
	Sentence  int    `json:"sentence,omitempty"`  // Sentence index in source (0-based)
}

// VerificationResult is the verdict for one claim. Verified is nil when the
// claim could not be determined either way; undetermined claims are grouped
// with disputed ones, never dropped.
type VerificationResult struct {
	Claim           Claim    `json:"claim"`
	Verified        *bool    `json:"verified"` // nil = undetermined
	Confidence      float64  `json:"confidence"`
	SupportingFacts []string `json:"supporting_facts,omitempty"`
	Source          string   `json:"source,omitempty"` // "knowledge_table", provider name, or ""
}

// Verdict is a convenience constructor for the Verified pointer.
func Verdict(v bool) *bool {
	return &v
}
