package model

import "fmt"

// ContentType identifies the kind of content a sample contains
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentVoice ContentType = "voice"
	ContentURL   ContentType = "url"
)

// ParseContentType validates a user-supplied content type string.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentText, ContentImage, ContentVideo, ContentVoice, ContentURL:
		return ContentType(s), nil
	}
	return "", fmt.Errorf("unknown content type %q (expected text, image, video, voice or url)", s)
}

// Task identifies what the caller wants done with a content sample
type Task string

const (
	TaskAnalysis  Task = "analysis"
	TaskFactCheck Task = "fact_check"
	TaskSummarize Task = "summarize"
)

// Signal is the output of one detector run: a direction (AI-indicating or
// not) plus a confidence. Signals are immutable once produced.
type Signal struct {
	DetectorName      string   `json:"detector_name"`
	IndicatesPositive bool     `json:"indicates_positive"`
	Confidence        float64  `json:"confidence"` // 0.0-1.0
	Flags             []string `json:"flags,omitempty"`
}

// DetectorWeights maps detector names to their contribution weight in the
// fused probability. Loaded at startup, never mutated at runtime. Weights
// for one content type sum to at most 1.0.
type DetectorWeights map[string]float64

// DefaultWeights returns the static per-content-type weight tables.
func DefaultWeights() map[ContentType]DetectorWeights {
	text := DetectorWeights{
		"watermark":           0.20,
		"perplexity":          0.10,
		"reward_model":        0.10,
		"linguistic_patterns": 0.05,
		"clickbait":           0.30,
		"emotional_language":  0.25,
	}
	return map[ContentType]DetectorWeights{
		ContentText: text,
		// Fetched pages run through the text detector set.
		ContentURL: text,
		ContentImage: {
			"metadata":        0.35,
			"visual_patterns": 0.25,
			"statistical":     0.20,
			"compression":     0.20,
		},
		ContentVideo: {
			"frame_consistency": 0.55,
			"codec_fingerprint": 0.35,
		},
		ContentVoice: {
			"spectral_patterns": 0.55,
			"prosody":           0.35,
		},
	}
}
