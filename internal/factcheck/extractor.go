package factcheck

import (
	"regexp"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// ClaimExtractor pulls candidate factual claims out of text with a bounded
// set of pattern rules.
type ClaimExtractor struct {
	patterns  []claimPattern
	keywords  []string
	maxClaims int
}

type claimPattern struct {
	name string
	re   *regexp.Regexp
}

// NewClaimExtractor creates a new claim extractor. maxClaims caps the
// output; zero or negative uses the default of 5.
func NewClaimExtractor(maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 5
	}
	return &ClaimExtractor{
		patterns: []claimPattern{
			{"researchers_found", regexp.MustCompile(`(?i)(?:scientists?|researchers?|studies|experts?)\s+(?:discovered|found|revealed|proved?|confirm(?:ed)?)\s+([^.!?]+)`)},
			{"according_to", regexp.MustCompile(`(?i)(?:according to|research shows?|data reveals?)\s+([^.!?]+)`)},
			{"breaking_evidence", regexp.MustCompile(`(?i)(?:breaking|new evidence|recent study)\s*[:,]?\s*([^.!?]+)`)},
			{"fact_prefix", regexp.MustCompile(`(?i)(?:fact|truth|reality):\s*([^.!?]+)`)},
			{"studies_prove", regexp.MustCompile(`(?i)(?:studies? prove|research confirms?)\s+([^.!?]+)`)},
		},
		keywords: []string{
			"discovered", "proven", "fact", "truth", "research", "study", "evidence",
		},
		maxClaims: maxClaims,
	}
}

// Extract returns at most maxClaims claims, de-duplicated by normalized
// text. An empty result is a valid outcome, not an error.
func (e *ClaimExtractor) Extract(text string) []model.Claim {
	var claims []model.Claim

	sentences := splitSentences(text)

	for _, p := range e.patterns {
		for _, match := range p.re.FindAllStringSubmatch(text, -1) {
			claim := strings.TrimSpace(match[1])
			if len(claim) <= 10 {
				continue
			}
			claims = append(claims, model.Claim{
				Text:      claim,
				Heuristic: "pattern:" + p.name,
				Sentence:  sentenceIndex(sentences, claim),
			})
		}
	}

	// Whole sentences carrying strong-assertion keywords count as claims
	// even when no pattern matched.
	for i, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				claims = append(claims, model.Claim{
					Text:      sentence,
					Heuristic: "keyword:" + kw,
					Sentence:  i,
				})
				break // Only match once per sentence
			}
		}
	}

	return e.dedupe(claims)
}

// dedupe removes duplicate claims by normalized text, preserving first
// occurrence order, and applies the cap.
func (e *ClaimExtractor) dedupe(claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim

	for _, claim := range claims {
		key := normalizeClaim(claim.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, claim)
		if len(unique) == e.maxClaims {
			break
		}
	}
	return unique
}

func normalizeClaim(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

func splitSentences(text string) []string {
	return sentenceSplitRe.Split(text, -1)
}

// sentenceIndex finds which sentence a pattern-extracted claim came from.
func sentenceIndex(sentences []string, claim string) int {
	needle := strings.ToLower(claim)
	for i, s := range sentences {
		if strings.Contains(strings.ToLower(s), needle) {
			return i
		}
	}
	return 0
}
