package factcheck

import (
	"context"
	"strings"

	"github.com/filterize/credengine/internal/model"
	"github.com/filterize/credengine/internal/provider"
)

// undeterminedConfidence is assigned when neither the knowledge table nor
// any provider could settle a claim. Undetermined claims are reported as
// disputed, never dropped.
const undeterminedConfidence = 0.3

// Verifier settles extracted claims: local knowledge table first, then a
// provider via the router, then an explicit undetermined verdict.
type Verifier struct {
	table  *KnowledgeTable
	router *provider.Router // nil disables provider lookups
}

// NewVerifier creates a verifier. router may be nil for local-only
// operation.
func NewVerifier(table *KnowledgeTable, router *provider.Router) *Verifier {
	if table == nil {
		table = NewKnowledgeTable()
	}
	return &Verifier{table: table, router: router}
}

// Verify settles one claim.
func (v *Verifier) Verify(ctx context.Context, claim model.Claim) model.VerificationResult {
	if entry, ok := v.table.Lookup(claim.Text); ok {
		return model.VerificationResult{
			Claim:           claim,
			Verified:        model.Verdict(entry.Verified),
			Confidence:      entry.Confidence,
			SupportingFacts: entry.Facts,
			Source:          "knowledge_table",
		}
	}

	if v.router != nil {
		if result, ok := v.verifyViaProvider(ctx, claim); ok {
			return result
		}
	}

	return model.VerificationResult{
		Claim:           claim,
		Verified:        nil,
		Confidence:      undeterminedConfidence,
		SupportingFacts: []string{"Unable to verify: " + claim.Text},
	}
}

// verifyViaProvider asks the router's fallback chain for a verdict. Any
// failure degrades to undetermined rather than erroring the pipeline.
func (v *Verifier) verifyViaProvider(ctx context.Context, claim model.Claim) (model.VerificationResult, bool) {
	resp, used, err := v.router.CallWithFallback(ctx, provider.Request{
		Content:     []byte(claim.Text),
		ContentType: model.ContentText,
		Task:        model.TaskFactCheck,
	}, "")
	if err != nil {
		return model.VerificationResult{}, false
	}

	result := model.VerificationResult{
		Claim:      claim,
		Confidence: undeterminedConfidence,
		Source:     used,
	}

	if verdict, ok := resp.Analysis["verdict"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(verdict)) {
		case "true":
			result.Verified = model.Verdict(true)
		case "false":
			result.Verified = model.Verdict(false)
		}
	}
	if conf, ok := resp.Analysis["confidence"].(float64); ok && conf >= 0 && conf <= 1 {
		result.Confidence = conf
	}
	if facts, ok := resp.Analysis["facts"].([]interface{}); ok {
		for _, f := range facts {
			if s, ok := f.(string); ok {
				result.SupportingFacts = append(result.SupportingFacts, s)
			}
		}
	}

	return result, true
}

// Score folds per-claim verdicts into the 0-100 fact-check score.
// Verified claims contribute their confidence; disputed and undetermined
// claims pull the score down.
func Score(results []model.VerificationResult) int {
	if len(results) == 0 {
		return 50 // Neutral: nothing checkable found
	}

	total := 0.0
	verifiedCount := 0
	for _, r := range results {
		if r.Verified != nil && *r.Verified {
			total += r.Confidence * 100
			verifiedCount++
		} else {
			total += (1 - r.Confidence) * 30
		}
	}

	avg := total / float64(len(results))
	if verifiedCount == 0 {
		if avg < 20 {
			return 20
		}
		return int(avg)
	}

	score := int(avg)
	if score > 95 {
		score = 95
	}
	if score < 10 {
		score = 10
	}
	return score
}

// Partition splits verification results per the claim-partition rule:
// verified == true goes to verified, everything else (false or
// undetermined) to disputed.
func Partition(results []model.VerificationResult) (verified, disputed []model.VerificationResult) {
	verified = make([]model.VerificationResult, 0, len(results))
	disputed = make([]model.VerificationResult, 0, len(results))
	for _, r := range results {
		if r.Verified != nil && *r.Verified {
			verified = append(verified, r)
		} else {
			disputed = append(disputed, r)
		}
	}
	return verified, disputed
}
