package detect

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/filterize/credengine/internal/model"
)

// solidPNG encodes a single-color image, the smoothest input the visual
// detector can see.
func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 120, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestMetadataDetector(t *testing.T) {
	d := NewMetadataDetector()

	s := d.Detect([]byte("PNG...Software: Midjourney v6..."))
	if !s.IndicatesPositive {
		t.Fatal("expected generator marker to fire")
	}
	found := false
	for _, f := range s.Flags {
		if f == "ai_software_midjourney" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ai_software_midjourney flag, got %v", s.Flags)
	}

	if s := d.Detect([]byte("PNG...Software: Nikon Capture...")); s.IndicatesPositive {
		t.Error("camera software should not fire")
	}

	if s := d.Detect(nil); len(s.Flags) == 0 || s.Flags[0] != "empty_content" {
		t.Errorf("expected empty_content flag, got %v", s.Flags)
	}
}

func TestVisualPatternDetector(t *testing.T) {
	d := NewVisualPatternDetector()

	s := d.Detect(solidPNG(t, 64, 64))
	if !s.IndicatesPositive {
		t.Fatal("expected solid image to register as unnaturally smooth")
	}
	if s.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0 for zero-delta image, got %v", s.Confidence)
	}

	s = d.Detect([]byte("not an image"))
	if s.IndicatesPositive {
		t.Error("undecodable input should not fire")
	}
	if len(s.Flags) == 0 || s.Flags[0] != "detector_error:undecodable_image" {
		t.Errorf("expected detector_error flag, got %v", s.Flags)
	}

	if s := d.Detect(solidPNG(t, 4, 4)); s.IndicatesPositive {
		t.Error("tiny image should not fire")
	}
}

func TestStatisticalDetector(t *testing.T) {
	d := NewStatisticalDetector()

	if s := d.Detect(make([]byte, 100)); s.IndicatesPositive {
		t.Error("too-small input should not fire")
	}

	s := d.Detect(make([]byte, 1024))
	if !s.IndicatesPositive {
		t.Fatal("expected zero-entropy input to fire")
	}
	if s.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0 for zero entropy, got %v", s.Confidence)
	}

	// Full byte spread lands at 8 bits/byte.
	spread := make([]byte, 4096)
	for i := range spread {
		spread[i] = byte(i % 256)
	}
	if s := d.Detect(spread); s.IndicatesPositive {
		t.Error("maximum-entropy input should not fire")
	}
}

func TestCompressionDetector(t *testing.T) {
	d := NewCompressionDetector()

	s := d.Detect([]byte("not an image"))
	if s.IndicatesPositive {
		t.Error("undecodable input should not fire")
	}
	if len(s.Flags) == 0 || s.Flags[0] != "detector_error:undecodable_image" {
		t.Errorf("expected detector_error flag, got %v", s.Flags)
	}

	// A solid PNG compresses far below the generator-typical ratio.
	if s := d.Detect(solidPNG(t, 256, 256)); s.IndicatesPositive {
		t.Error("highly compressible image should not fire")
	}
}

func TestImageSet_UndecodableDegradesToFlags(t *testing.T) {
	set := ForContentType(model.ContentImage)
	signals := set.Run([]byte("garbage bytes, not a real image"))

	if len(signals) != len(set.Detectors) {
		t.Fatalf("expected %d signals, got %d", len(set.Detectors), len(signals))
	}
	for _, s := range signals {
		if s.IndicatesPositive {
			t.Errorf("detector %s fired on garbage input", s.DetectorName)
		}
	}
}
