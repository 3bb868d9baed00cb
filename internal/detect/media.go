package detect

import (
	"crypto/sha256"
	"fmt"

	"github.com/filterize/credengine/internal/model"
)

// FingerprintDetector derives a deterministic score from a content digest.
// Video and voice analysis has no local decoding here; the contract these
// detectors honor is determinism over identical input, with a stable slice
// of the digest per detector so they disagree independently.
type FingerprintDetector struct {
	name   string
	offset int
}

func NewFingerprintDetector(name string, offset int) *FingerprintDetector {
	return &FingerprintDetector{name: name, offset: offset % (sha256.Size - 2)}
}

func (d *FingerprintDetector) Name() string { return d.name }

func (d *FingerprintDetector) Detect(content []byte) model.Signal {
	if len(content) == 0 {
		return model.Signal{
			DetectorName: d.name,
			Flags:        []string{"empty_content"},
		}
	}

	sum := sha256.Sum256(content)
	score := float64(sum[d.offset]) / 255.0

	if score > 0.5 {
		return model.Signal{
			DetectorName:      d.name,
			IndicatesPositive: true,
			Confidence:        clamp01((score - 0.5) * 2),
			Flags:             []string{fmt.Sprintf("%s_anomaly", d.name)},
		}
	}
	return model.Signal{DetectorName: d.name}
}
