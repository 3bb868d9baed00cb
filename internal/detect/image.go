package detect

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// aiSoftwareMarkers are generator names commonly embedded in EXIF software
// tags or tool comments.
var aiSoftwareMarkers = []string{
	"midjourney", "dall-e", "dalle", "stable diffusion", "firefly",
	"leonardo", "runway", "craiyon", "nightcafe", "stability.ai",
	"automatic1111", "dreambooth",
}

// suspiciousMetadataWords show up in metadata written by generation
// pipelines.
var suspiciousMetadataWords = []string{
	"generated", "synthetic", "artificial", "neural", "inference",
	"txt2img", "img2img", "seed_", "cfg_",
}

// MetadataDetector scans the raw byte stream for generator fingerprints in
// embedded metadata without requiring a full decode.
type MetadataDetector struct{}

func NewMetadataDetector() *MetadataDetector {
	return &MetadataDetector{}
}

func (d *MetadataDetector) Name() string { return "metadata" }

func (d *MetadataDetector) Detect(content []byte) model.Signal {
	if len(content) == 0 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"empty_content"},
		}
	}

	// Metadata sits near the head of the file; 64KB covers EXIF and text
	// chunks without scanning whole media files.
	head := content
	if len(head) > 64*1024 {
		head = head[:64*1024]
	}
	haystack := strings.ToLower(string(head))

	var flags []string
	confidence := 0.0
	for _, marker := range aiSoftwareMarkers {
		if strings.Contains(haystack, marker) {
			flags = append(flags, "ai_software_"+strings.ReplaceAll(marker, " ", "_"))
			confidence += 0.8
		}
	}
	for _, word := range suspiciousMetadataWords {
		if strings.Contains(haystack, word) {
			flags = append(flags, "suspicious_metadata_"+strings.TrimSuffix(word, "_"))
			confidence += 0.3
		}
	}

	if confidence > 0.3 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01(confidence),
			Flags:             flags,
		}
	}
	return model.Signal{DetectorName: d.Name(), Flags: flags}
}

// VisualPatternDetector decodes the image and measures local smoothness.
// Diffusion output is markedly smoother than sensor data.
type VisualPatternDetector struct{}

func NewVisualPatternDetector() *VisualPatternDetector {
	return &VisualPatternDetector{}
}

func (d *VisualPatternDetector) Name() string { return "visual_patterns" }

func (d *VisualPatternDetector) Detect(content []byte) model.Signal {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"detector_error:undecodable_image"},
		}
	}

	bounds := img.Bounds()
	if bounds.Dx() < 8 || bounds.Dy() < 8 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"image_too_small"},
		}
	}

	// Sample a 32x32 grid and accumulate luminance deltas between
	// horizontal neighbors.
	stepX := bounds.Dx() / 32
	stepY := bounds.Dy() / 32
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}

	var totalDelta, samples float64
	for y := bounds.Min.Y; y < bounds.Max.Y-stepX; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X-stepX; x += stepX {
			totalDelta += math.Abs(luminance(img, x, y) - luminance(img, x+stepX, y))
			samples++
		}
	}
	if samples == 0 {
		return model.Signal{DetectorName: d.Name()}
	}

	smoothness := 1.0 - clamp01(totalDelta/samples/64.0)
	if smoothness > 0.85 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01((smoothness - 0.85) / 0.15),
			Flags:             []string{"unnatural_smoothness"},
		}
	}
	return model.Signal{DetectorName: d.Name()}
}

func luminance(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	return 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
}

// StatisticalDetector computes byte-level entropy. Generated images sit in
// a narrower entropy band than camera output with sensor noise.
type StatisticalDetector struct{}

func NewStatisticalDetector() *StatisticalDetector {
	return &StatisticalDetector{}
}

func (d *StatisticalDetector) Name() string { return "statistical" }

func (d *StatisticalDetector) Detect(content []byte) model.Signal {
	if len(content) < 256 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"too_small_for_statistics"},
		}
	}

	var hist [256]int
	for _, b := range content {
		hist[b]++
	}
	total := float64(len(content))
	entropy := 0.0
	for _, n := range hist {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}

	// Compressed camera output pushes close to 8 bits/byte; generated
	// files with large uniform regions fall well below.
	if entropy < 6.5 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01((6.5 - entropy) / 3.0),
			Flags:             []string{"low_byte_entropy"},
		}
	}
	return model.Signal{DetectorName: d.Name()}
}

// CompressionDetector compares file size to pixel count. Generators emit a
// characteristic bytes-per-pixel range.
type CompressionDetector struct{}

func NewCompressionDetector() *CompressionDetector {
	return &CompressionDetector{}
}

func (d *CompressionDetector) Name() string { return "compression" }

func (d *CompressionDetector) Detect(content []byte) model.Signal {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"detector_error:undecodable_image"},
		}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"detector_error:zero_dimensions"},
		}
	}

	bytesPerPixel := float64(len(content)) / float64(cfg.Width*cfg.Height)
	if bytesPerPixel >= 0.5 && bytesPerPixel <= 2.0 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        0.3,
			Flags:             []string{"ai_typical_compression_ratio"},
		}
	}
	return model.Signal{DetectorName: d.Name()}
}
