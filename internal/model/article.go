package model

// Article is a related reference surfaced alongside a fact-check result.
type Article struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	Source         string `json:"source,omitempty"`
	Summary        string `json:"summary,omitempty"`
	RelevanceScore int    `json:"relevance_score"` // 0-100
}

// SourceTier classifies how authoritative an article source is.
type SourceTier int

const (
	TierUnknown   SourceTier = 0 // Not classified
	TierPrimary   SourceTier = 1 // Scientific bodies, official agencies
	TierSecondary SourceTier = 2 // Encyclopedias, major publishers, wire services
	TierTertiary  SourceTier = 3 // Blogs, aggregators, personal sites
)

func (t SourceTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}
