package score

import (
	"fmt"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// confidenceFloor replaces the degenerate "0 confidence, 0 probability"
// result when no detector fires; callers must not read that case as
// "certainly authentic".
const confidenceFloor = 0.2

// Aggregator fuses independent detector signals into one credibility
// result using static per-detector weights.
type Aggregator struct {
	weights map[model.ContentType]model.DetectorWeights
}

// NewAggregator creates an aggregator over the given weight tables. Nil
// falls back to the built-in defaults.
func NewAggregator(weights map[model.ContentType]model.DetectorWeights) *Aggregator {
	if weights == nil {
		weights = model.DefaultWeights()
	}
	return &Aggregator{weights: weights}
}

// Aggregate combines signals for one content type. Each positive signal
// contributes weight*confidence to the probability; the sum is clamped to
// [0,1]. Disagreeing detectors are both counted, there is no veto.
func (a *Aggregator) Aggregate(signals []model.Signal, ct model.ContentType) *model.CredibilityResult {
	weights := a.weights[ct]

	probability := 0.0
	var methods []string
	var flags []string
	seen := make(map[string]bool)

	for _, s := range signals {
		for _, f := range s.Flags {
			if !seen[f] {
				seen[f] = true
				flags = append(flags, f)
			}
		}
		if !s.IndicatesPositive {
			continue
		}
		probability += weights[s.DetectorName] * s.Confidence
		methods = append(methods, s.DetectorName)
	}

	if probability > 1.0 {
		probability = 1.0
	}

	confidence := confidenceFloor
	if len(signals) > 0 && len(methods) > 0 {
		confidence = float64(len(methods)) / float64(len(signals))
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return &model.CredibilityResult{
		Probability: probability,
		Confidence:  confidence,
		MethodsUsed: methods,
		Flags:       flags,
		Explanation: Explain(probability, methods),
	}
}

// Explain renders the probability-banded explanation for a result.
func Explain(probability float64, methods []string) string {
	switch {
	case probability < 0.3:
		return "Content appears authentic with natural variation and unpredictability."
	case probability <= 0.7:
		return fmt.Sprintf("Content shows mixed signals from: %s. Partially generated content possible.", joinMethods(methods))
	default:
		return fmt.Sprintf("High probability of AI generation detected via: %s. Consider verification.", joinMethods(methods))
	}
}

func joinMethods(methods []string) string {
	if len(methods) == 0 {
		return "no detectors"
	}
	return strings.Join(methods, ", ")
}
