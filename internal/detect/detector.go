package detect

import (
	"github.com/filterize/credengine/internal/model"
)

// Detector evaluates one local heuristic over a content sample. Detectors
// are pure: no network I/O, no shared state, bounded runtime. A detector
// that cannot evaluate the content returns a zero-confidence signal with an
// explanatory flag instead of failing.
type Detector interface {
	// Name returns the detector name used for weighting and cache keys.
	Name() string

	// Detect produces a signal for the given content. It never errors;
	// truly invalid input yields confidence 0 and a detector_error flag.
	Detect(content []byte) model.Signal
}

// Set is the ordered detector set for one content type. The ID participates
// in cache fingerprints so that changing the set invalidates old entries.
type Set struct {
	ID        string
	Detectors []Detector
}

// Run evaluates every detector in the set. Detectors are independent and
// read-only, so evaluation order does not affect the result.
func (s Set) Run(content []byte) []model.Signal {
	signals := make([]model.Signal, 0, len(s.Detectors))
	for _, d := range s.Detectors {
		signals = append(signals, d.Detect(content))
	}
	return signals
}

// ForContentType returns the detector set for a content type. Fetched URL
// content runs through the text set once the page text is extracted.
func ForContentType(ct model.ContentType) Set {
	switch ct {
	case model.ContentText, model.ContentURL:
		return Set{
			ID: "text/v1",
			Detectors: []Detector{
				NewWatermarkDetector(),
				NewPerplexityDetector(),
				NewRewardModelDetector(),
				NewLinguisticPatternDetector(),
				NewClickbaitDetector(),
				NewEmotionalLanguageDetector(),
			},
		}
	case model.ContentImage:
		return Set{
			ID: "image/v1",
			Detectors: []Detector{
				NewMetadataDetector(),
				NewVisualPatternDetector(),
				NewStatisticalDetector(),
				NewCompressionDetector(),
			},
		}
	case model.ContentVideo:
		return Set{
			ID: "video/v1",
			Detectors: []Detector{
				NewFingerprintDetector("frame_consistency", 0),
				NewFingerprintDetector("codec_fingerprint", 8),
			},
		}
	case model.ContentVoice:
		return Set{
			ID: "voice/v1",
			Detectors: []Detector{
				NewFingerprintDetector("spectral_patterns", 16),
				NewFingerprintDetector("prosody", 24),
			},
		}
	default:
		return Set{ID: "none/v1"}
	}
}
