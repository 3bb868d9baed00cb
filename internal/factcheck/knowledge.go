package factcheck

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// KnowledgeEntry is one locally verifiable topic: if a claim mentions all
// terms of any trigger group, the entry's verdict applies.
type KnowledgeEntry struct {
	Topic      string     `yaml:"topic"`
	Triggers   [][]string `yaml:"triggers"`
	Verified   bool       `yaml:"verified"`
	Confidence float64    `yaml:"confidence"`
	Facts      []string   `yaml:"facts"`
}

// KnowledgeTable answers claims from a static local corpus before any
// provider is consulted.
type KnowledgeTable struct {
	entries []KnowledgeEntry
}

// NewKnowledgeTable returns a table seeded with the built-in corpus.
func NewKnowledgeTable() *KnowledgeTable {
	return &KnowledgeTable{entries: builtinKnowledge()}
}

// LoadKnowledgeTable merges entries from a YAML file over the built-ins.
// File entries are checked first so operators can override a verdict.
func LoadKnowledgeTable(path string) (*KnowledgeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}

	var loaded []KnowledgeEntry
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse knowledge file: %w", err)
	}

	return &KnowledgeTable{entries: append(loaded, builtinKnowledge()...)}, nil
}

// Lookup finds the first entry whose trigger group fully matches the
// claim. The boolean reports whether anything matched.
func (t *KnowledgeTable) Lookup(claim string) (KnowledgeEntry, bool) {
	lower := strings.ToLower(claim)
	for _, entry := range t.entries {
		for _, group := range entry.Triggers {
			if matchesAll(lower, group) {
				return entry, true
			}
		}
	}
	return KnowledgeEntry{}, false
}

func matchesAll(text string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// builtinKnowledge covers the well-trodden misinformation topics the
// engine can settle without a provider round-trip.
func builtinKnowledge() []KnowledgeEntry {
	return []KnowledgeEntry{
		{
			Topic:      "Earth and Geography",
			Triggers:   [][]string{{"earth", "flat"}},
			Verified:   false,
			Confidence: 0.98,
			Facts: []string{
				"The Earth is an oblate spheroid, confirmed by satellite imagery and physics",
				"Ships disappearing hull-first over the horizon demonstrate curvature",
			},
		},
		{
			Topic:      "Vaccines and Medicine",
			Triggers:   [][]string{{"vaccine", "autism"}, {"vaccines", "cause"}},
			Verified:   false,
			Confidence: 0.97,
			Facts: []string{
				"Large-scale studies involving millions of children show no link between vaccines and autism",
				"The original study claiming a link was retracted and its author struck off",
			},
		},
		{
			Topic:      "Climate and Environment",
			Triggers:   [][]string{{"climate", "hoax"}, {"global warming", "fake"}},
			Verified:   false,
			Confidence: 0.95,
			Facts: []string{
				"Multiple independent temperature records show consistent warming since the industrial era",
				"The scientific consensus on human-caused climate change exceeds 97%",
			},
		},
		{
			Topic:      "Space and Astronomy",
			Triggers:   [][]string{{"moon", "landing", "fake"}, {"moon", "hoax"}},
			Verified:   false,
			Confidence: 0.96,
			Facts: []string{
				"Moon landings left retroreflectors still used by observatories today",
				"Thousands of independent engineers and scientists tracked the missions",
			},
		},
		{
			Topic:      "Technology and Health",
			Triggers:   [][]string{{"5g", "virus"}, {"5g", "coronavirus"}, {"5g", "covid"}},
			Verified:   false,
			Confidence: 0.97,
			Facts: []string{
				"Radio waves cannot create or transmit viruses",
				"COVID-19 spread in countries with no 5G infrastructure",
			},
		},
		{
			Topic:      "Health and Medicine",
			Triggers:   [][]string{{"chocolate", "cures"}, {"miracle cure"}},
			Verified:   false,
			Confidence: 0.9,
			Facts: []string{
				"No single food has been shown to cure aging or disease",
				"Claims of suppressed miracle cures are a recurring misinformation pattern",
			},
		},
		{
			Topic:      "Health and Pandemics",
			Triggers:   [][]string{{"covid", "vaccine", "microchip"}},
			Verified:   false,
			Confidence: 0.98,
			Facts: []string{
				"Vaccine vials contain no electronics; doses are far smaller than any chip",
			},
		},
	}
}
