package factcheck

import (
	"strings"
	"testing"
)

func TestExtract_Patterns(t *testing.T) {
	e := NewClaimExtractor(5)

	tests := []struct {
		text      string
		heuristic string
	}{
		{"Scientists discovered that chocolate reverses the aging process entirely.", "pattern:researchers_found"},
		{"According to recent data, the economy grew by ten percent last quarter.", "pattern:according_to"},
		{"Breaking: new treatment eliminates all known diseases overnight.", "pattern:breaking_evidence"},
		{"Fact: drinking eight glasses of water daily is mandatory for survival.", "pattern:fact_prefix"},
		{"Research confirms that standing desks double workplace productivity rates.", "pattern:studies_prove"},
	}

	for _, tt := range tests {
		claims := e.Extract(tt.text)
		if len(claims) == 0 {
			t.Errorf("Extract(%q): no claims", tt.text)
			continue
		}
		if claims[0].Heuristic != tt.heuristic {
			t.Errorf("Extract(%q): heuristic = %s, want %s", tt.text, claims[0].Heuristic, tt.heuristic)
		}
	}
}

func TestExtract_KeywordSentences(t *testing.T) {
	e := NewClaimExtractor(5)

	claims := e.Extract("The new evidence about the ancient site changes everything we believed.")
	if len(claims) == 0 {
		t.Fatal("expected keyword sentence to yield a claim")
	}
	found := false
	for _, c := range claims {
		if strings.HasPrefix(c.Heuristic, "keyword:") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a keyword heuristic, got %+v", claims)
	}
}

func TestExtract_NoClaims(t *testing.T) {
	e := NewClaimExtractor(5)

	if claims := e.Extract("Nice day. Short walk."); len(claims) != 0 {
		t.Errorf("expected no claims, got %+v", claims)
	}
	if claims := e.Extract(""); len(claims) != 0 {
		t.Errorf("expected no claims for empty text, got %+v", claims)
	}
}

func TestExtract_DedupeAndCap(t *testing.T) {
	e := NewClaimExtractor(2)

	// The same claim phrased identically should collapse to one entry.
	text := "Scientists discovered that water is wet everywhere. Scientists discovered that water is wet everywhere."
	claims := e.Extract(text)
	seen := make(map[string]int)
	for _, c := range claims {
		seen[normalizeClaim(c.Text)]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("claim %q extracted %d times", k, n)
		}
	}

	// Cap applies across heuristics.
	text = "Scientists discovered that A causes B in all cases. " +
		"Researchers found that C prevents D under pressure. " +
		"Studies prove that E doubles F within a week."
	if claims := e.Extract(text); len(claims) > 2 {
		t.Errorf("expected at most 2 claims, got %d", len(claims))
	}
}

func TestExtract_ShortMatchesSkipped(t *testing.T) {
	e := NewClaimExtractor(5)

	// Captured group at or under 10 characters is discarded as noise.
	claims := e.Extract("Scientists found gold.")
	for _, c := range claims {
		if strings.HasPrefix(c.Heuristic, "pattern:") && len(c.Text) <= 10 {
			t.Errorf("short pattern claim kept: %+v", c)
		}
	}
}
