package detect

import (
	"regexp"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// WatermarkDetector looks for the unnaturally balanced vocabulary that
// token-level watermarking leaves behind.
type WatermarkDetector struct{}

func NewWatermarkDetector() *WatermarkDetector {
	return &WatermarkDetector{}
}

func (d *WatermarkDetector) Name() string { return "watermark" }

func (d *WatermarkDetector) Detect(content []byte) model.Signal {
	words := strings.Fields(string(content))
	if len(words) < 10 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"too_short_for_watermark"},
		}
	}

	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[strings.ToLower(w)]++
	}

	diversity := float64(len(freq)) / float64(len(words))

	// Heavily repeated words argue against watermarking, which distributes
	// vocabulary evenly.
	repetition := 0
	threshold := float64(len(words)) * 0.05
	for _, n := range freq {
		if float64(n) > threshold {
			repetition++
		}
	}

	if diversity < 0.7 && repetition < 3 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01(1.0 - diversity),
			Flags:             []string{"watermark_detected"},
		}
	}
	return model.Signal{DetectorName: d.Name()}
}

// PerplexityDetector approximates perplexity from word-transition
// predictability. Machine text tends to follow very common transitions.
type PerplexityDetector struct {
	transitions map[string][]string
}

func NewPerplexityDetector() *PerplexityDetector {
	return &PerplexityDetector{
		transitions: map[string][]string{
			"the":  {"main", "key", "primary", "central"},
			"this": {"is", "approach", "method", "technique"},
			"in":   {"this", "the", "order", "conclusion"},
			"it":   {"is", "can", "should", "will"},
		},
	}
}

func (d *PerplexityDetector) Name() string { return "perplexity" }

func (d *PerplexityDetector) Detect(content []byte) model.Signal {
	words := strings.Fields(strings.ToLower(string(content)))
	if len(words) < 5 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"too_short_for_perplexity"},
		}
	}

	surprises := 0
	for i := 0; i < len(words)-1; i++ {
		expected, ok := d.transitions[words[i]]
		if !ok {
			continue
		}
		found := false
		for _, w := range expected {
			if words[i+1] == w {
				found = true
				break
			}
		}
		if !found {
			surprises++
		}
	}

	score := float64(surprises) / float64(len(words)-1) * 100
	if score < 20 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01(1.0 - score/100),
			Flags:             []string{"low_perplexity"},
		}
	}
	return model.Signal{DetectorName: d.Name()}
}

// RewardModelDetector scores helpfulness/harmlessness/honesty markers.
// Text optimized against a reward model lands unusually high on all three.
type RewardModelDetector struct {
	helpful  []*regexp.Regexp
	cautious *regexp.Regexp
	hedging  []*regexp.Regexp
}

func NewRewardModelDetector() *RewardModelDetector {
	return &RewardModelDetector{
		helpful: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(here are|let me|i can help|i'll|i will)\b`),
			regexp.MustCompile(`(?i)\b(steps|process|method|approach|way to)\b`),
			regexp.MustCompile(`(?i)\b(first|second|third|finally|in conclusion)\b`),
		},
		cautious: regexp.MustCompile(`(?i)\b(please note|it's important|be careful|consider|however|although|while|despite|may|might|could|should|would)\b`),
		hedging: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(generally|typically|usually|often|sometimes)\b`),
			regexp.MustCompile(`(?i)\b(appears|seems|suggests|indicates)\b`),
		},
	}
}

func (d *RewardModelDetector) Name() string { return "reward_model" }

func (d *RewardModelDetector) Detect(content []byte) model.Signal {
	text := string(content)
	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"empty_content"},
		}
	}

	score := 50.0
	for _, p := range d.helpful {
		if p.MatchString(text) {
			score += 10
		}
	}
	if cautiousHits := len(d.cautious.FindAllString(text, -1)); float64(cautiousHits) > float64(wordCount)*0.1 {
		score += 15
	}
	for _, p := range d.hedging {
		if p.MatchString(text) {
			score += 5
		}
	}

	if score > 85 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01((score - 50) / 50),
			Flags:             []string{"high_reward_score"},
		}
	}
	return model.Signal{DetectorName: d.Name()}
}

// LinguisticPatternDetector flags the stylistic tells of generated prose:
// stacked formal connectives and repetitive sentence openers.
type LinguisticPatternDetector struct {
	formal       *regexp.Regexp
	contractions *regexp.Regexp
}

func NewLinguisticPatternDetector() *LinguisticPatternDetector {
	return &LinguisticPatternDetector{
		formal:       regexp.MustCompile(`(?i)\b(furthermore|moreover|subsequently|consequently|utilize|demonstrate|facilitate|implement)\b`),
		contractions: regexp.MustCompile(`(?i)\b(dont|cant|wont|im|youre|theyre)\b`),
	}
}

func (d *LinguisticPatternDetector) Name() string { return "linguistic_patterns" }

func (d *LinguisticPatternDetector) Detect(content []byte) model.Signal {
	text := string(content)
	words := strings.Fields(text)
	if len(words) == 0 {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"empty_content"},
		}
	}

	var flags []string
	matched := 0

	if formalCount := len(d.formal.FindAllString(text, -1)); float64(formalCount) > float64(len(words))*0.05 {
		flags = append(flags, "overly_formal")
		matched++
	}

	sentences := splitSentences(text)
	if len(sentences) > 3 {
		starts := make([]string, 0, len(sentences))
		for _, s := range sentences {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if len(s) > 10 {
				s = s[:10]
			}
			starts = append(starts, strings.ToLower(s))
		}
		unique := make(map[string]bool, len(starts))
		for _, s := range starts {
			unique[s] = true
		}
		if float64(len(unique)) < float64(len(starts))*0.7 {
			flags = append(flags, "repetitive_structure")
			matched++
		}
	}

	// Informative but not indicative on its own.
	if len(words) > 20 && !d.contractions.MatchString(text) {
		flags = append(flags, "perfect_grammar")
	}

	if matched > 0 {
		return model.Signal{
			DetectorName:      d.Name(),
			IndicatesPositive: true,
			Confidence:        clamp01(0.5 * float64(matched)),
			Flags:             flags,
		}
	}
	return model.Signal{DetectorName: d.Name(), Flags: flags}
}

// ClickbaitDetector matches sensationalist phrasing commonly paired with
// fabricated or generated content.
type ClickbaitDetector struct {
	patterns []*regexp.Regexp
}

func NewClickbaitDetector() *ClickbaitDetector {
	return &ClickbaitDetector{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)you won't believe`),
			regexp.MustCompile(`(?i)this is what happens`),
			regexp.MustCompile(`(?i)shocking`),
			regexp.MustCompile(`(?i)unbelievable`),
			regexp.MustCompile(`(?i)will blow your mind`),
			regexp.MustCompile(`(?i)miracle cure`),
			regexp.MustCompile(`(?i)big pharma`),
			regexp.MustCompile(`(?i)they don't want you to know`),
			regexp.MustCompile(`(?i)doctors hate`),
			regexp.MustCompile(`(?i)\b(hides|hidden|cover[- ]?up)\b`),
		},
	}
}

func (d *ClickbaitDetector) Name() string { return "clickbait" }

func (d *ClickbaitDetector) Detect(content []byte) model.Signal {
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"empty_content"},
		}
	}

	hits := 0
	for _, p := range d.patterns {
		if p.MatchString(text) {
			hits++
		}
	}
	if hits == 0 {
		return model.Signal{DetectorName: d.Name()}
	}
	return model.Signal{
		DetectorName:      d.Name(),
		IndicatesPositive: true,
		Confidence:        clamp01(0.35 * float64(hits)),
		Flags:             []string{"suspicious_phrasing", "clickbait"},
	}
}

// EmotionalLanguageDetector counts charged vocabulary and overclaiming
// assertion verbs.
type EmotionalLanguageDetector struct {
	words map[string]bool
}

func NewEmotionalLanguageDetector() *EmotionalLanguageDetector {
	words := map[string]bool{
		"love": true, "hate": true, "amazing": true, "terrible": true,
		"disgrace": true, "outrage": true, "miracle": true, "cure": true,
		"cures": true, "confirm": true, "confirms": true, "confirmed": true,
		"prove": true, "proves": true, "proven": true, "destroy": true,
		"destroyed": true, "scandal": true,
	}
	return &EmotionalLanguageDetector{words: words}
}

func (d *EmotionalLanguageDetector) Name() string { return "emotional_language" }

func (d *EmotionalLanguageDetector) Detect(content []byte) model.Signal {
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return model.Signal{
			DetectorName: d.Name(),
			Flags:        []string{"empty_content"},
		}
	}

	count := 0
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if d.words[w] {
			count++
		}
	}
	exclaims := strings.Count(text, "!")
	count += exclaims

	if count < 2 {
		return model.Signal{DetectorName: d.Name()}
	}

	flags := []string{"emotional_language"}
	if exclaims >= 2 {
		flags = append(flags, "strong_sentiment")
	}
	return model.Signal{
		DetectorName:      d.Name(),
		IndicatesPositive: true,
		Confidence:        clamp01(0.25 * float64(count)),
		Flags:             flags,
	}
}

var (
	wordRe     = regexp.MustCompile(`\w+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// splitSentences splits text on sentence terminators (simple heuristic).
func splitSentences(text string) []string {
	return sentenceRe.Split(text, -1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
