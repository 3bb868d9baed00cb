package factcheck

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/filterize/credengine/internal/model"
)

// ArticleFinder assembles related-article candidates for a fact-check
// result from configured RSS feeds and a built-in catalog. Ranking and
// de-duplication happen in the report package.
type ArticleFinder struct {
	parser      *gofeed.Parser
	feeds       []string
	maxArticles int
	verbose     bool
}

// NewArticleFinder creates a finder. feeds may be empty; the built-in
// catalog always applies.
func NewArticleFinder(feeds []string, maxArticles int, verbose bool) *ArticleFinder {
	if maxArticles <= 0 {
		maxArticles = 6
	}
	return &ArticleFinder{
		parser:      gofeed.NewParser(),
		feeds:       feeds,
		maxArticles: maxArticles,
		verbose:     verbose,
	}
}

// Find returns related-article candidates for the content, catalog first
// (stable relevance scores), then feed items that mention an extracted
// topic. Feed failures degrade to catalog-only results.
func (f *ArticleFinder) Find(ctx context.Context, content string) []model.Article {
	topics := ExtractTopics(content)

	var articles []model.Article
	for _, topic := range topics {
		articles = append(articles, catalogArticles(topic)...)
	}
	if len(articles) == 0 {
		articles = append(articles, fallbackArticles()...)
	}

	for _, feedURL := range f.feeds {
		items, err := f.searchFeed(ctx, feedURL, topics)
		if err != nil {
			if f.verbose {
				fmt.Fprintf(os.Stderr, "feed %s failed: %v\n", feedURL, err)
			}
			continue
		}
		articles = append(articles, items...)
	}

	return articles
}

// searchFeed parses one RSS/Atom feed and keeps items mentioning a topic
// keyword. Feed items rank below curated catalog entries.
func (f *ArticleFinder) searchFeed(ctx context.Context, feedURL string, topics []string) ([]model.Article, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var out []model.Article
	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}
		haystack := strings.ToLower(item.Title + " " + item.Description)
		matched := len(topics) == 0
		for _, t := range topics {
			if strings.Contains(haystack, strings.ToLower(t)) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		out = append(out, model.Article{
			Title:          item.Title,
			URL:            item.Link,
			Source:         feed.Title,
			Summary:        strings.TrimSpace(item.Description),
			RelevanceScore: 70 + tierBoost(item.Link),
		})
		if len(out) >= f.maxArticles {
			break
		}
	}
	return out, nil
}

// tierBoost nudges relevance by source authority.
func tierBoost(rawURL string) int {
	switch ClassifySource(rawURL) {
	case model.TierPrimary:
		return 10
	case model.TierSecondary:
		return 5
	default:
		return 0
	}
}

// primaryHosts and secondaryHosts classify well-known outlets.
var primaryHosts = map[string]bool{
	"www.who.int": true, "www.nasa.gov": true, "www.cdc.gov": true,
	"www.nih.gov": true, "www.noaa.gov": true, "climate.nasa.gov": true,
}

var secondaryHosts = map[string]bool{
	"www.reuters.com": true, "apnews.com": true, "www.bbc.com": true,
	"www.nature.com": true, "www.scientificamerican.com": true,
	"www.snopes.com": true, "www.factcheck.org": true,
}

// ClassifySource maps an article URL to a source authority tier.
func ClassifySource(rawURL string) model.SourceTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierUnknown
	}
	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	switch {
	case primaryHosts[host]:
		return model.TierPrimary
	case secondaryHosts[host]:
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}

// topicTable maps content keywords to topics, mirroring the curated
// catalog below.
var topicTable = []struct {
	keyword string
	topic   string
}{
	{"earth", "Earth and Geography"},
	{"vaccine", "Vaccines and Medicine"},
	{"climate", "Climate and Environment"},
	{"moon", "Space and Astronomy"},
	{"5g", "Technology and Health"},
	{"coronavirus", "Health and Pandemics"},
	{"covid", "Health and Pandemics"},
	{"cure", "Health and Medicine"},
	{"chocolate", "Health and Medicine"},
}

// ExtractTopics returns the topics the content touches, in table order.
func ExtractTopics(content string) []string {
	lower := strings.ToLower(content)
	var topics []string
	seen := make(map[string]bool)
	for _, entry := range topicTable {
		if strings.Contains(lower, entry.keyword) && !seen[entry.topic] {
			seen[entry.topic] = true
			topics = append(topics, entry.topic)
		}
	}
	return topics
}

// catalogArticles returns the curated entries for one topic.
func catalogArticles(topic string) []model.Article {
	return articleCatalog[topic]
}

// fallbackArticles covers content with no recognized topic.
func fallbackArticles() []model.Article {
	return []model.Article{
		{
			Title:          "How to Evaluate Sources and Claims",
			URL:            "https://www.factcheck.org/our-process/",
			Source:         "FactCheck.org",
			Summary:        "A practical guide to weighing evidence behind online claims.",
			RelevanceScore: 80,
		},
		{
			Title:          "Media Literacy: Spotting Misinformation",
			URL:            "https://www.bbc.com/news/topics/media-literacy",
			Source:         "BBC",
			Summary:        "Techniques for recognizing fabricated or misleading stories.",
			RelevanceScore: 75,
		},
	}
}

// articleCatalog mirrors the curated reference set, keyed by topic.
var articleCatalog = map[string][]model.Article{
	"Earth and Geography": {
		{
			Title:          "Why We Know the Earth Is Round",
			URL:            "https://www.nasa.gov/earth/",
			Source:         "NASA",
			Summary:        "Observational and satellite evidence for Earth's shape.",
			RelevanceScore: 98,
		},
		{
			Title:          "Flat Earth Claims, Examined",
			URL:            "https://www.scientificamerican.com/article/flat-earth-claims/",
			Source:         "Scientific American",
			Summary:        "A survey of flat-earth arguments and the physics that answers them.",
			RelevanceScore: 92,
		},
	},
	"Vaccines and Medicine": {
		{
			Title:          "Vaccine Safety: What Large Studies Show",
			URL:            "https://www.cdc.gov/vaccinesafety/",
			Source:         "CDC",
			Summary:        "Population-scale evidence on vaccine safety and efficacy.",
			RelevanceScore: 96,
		},
		{
			Title:          "The Retracted Study Behind the Autism Myth",
			URL:            "https://www.bbc.com/news/health-autism-vaccine-myth",
			Source:         "BBC",
			Summary:        "How a fraudulent paper seeded a persistent health myth.",
			RelevanceScore: 93,
		},
	},
	"Climate and Environment": {
		{
			Title:          "Climate Change: How Do We Know?",
			URL:            "https://climate.nasa.gov/evidence/",
			Source:         "NASA",
			Summary:        "The independent lines of evidence for a warming climate.",
			RelevanceScore: 97,
		},
		{
			Title:          "State of the Climate Report",
			URL:            "https://www.noaa.gov/climate",
			Source:         "NOAA",
			Summary:        "Annual assessment of global temperature and climate indicators.",
			RelevanceScore: 94,
		},
	},
	"Space and Astronomy": {
		{
			Title:          "Apollo Mission Evidence Still Visible Today",
			URL:            "https://www.nasa.gov/apollo/",
			Source:         "NASA",
			Summary:        "Retroreflectors and orbital imagery from the lunar missions.",
			RelevanceScore: 95,
		},
		{
			Title:          "Moon Landing Conspiracy Theories, Debunked",
			URL:            "https://www.reuters.com/fact-check/moon-landing",
			Source:         "Reuters",
			Summary:        "Point-by-point review of common moon-hoax arguments.",
			RelevanceScore: 91,
		},
	},
	"Technology and Health": {
		{
			Title:          "5G and Health: What the Research Says",
			URL:            "https://www.who.int/health-topics/electromagnetic-fields",
			Source:         "WHO",
			Summary:        "Radiofrequency exposure research and safety limits.",
			RelevanceScore: 96,
		},
		{
			Title:          "No, 5G Does Not Spread Viruses",
			URL:            "https://www.factcheck.org/5g-virus-claims/",
			Source:         "FactCheck.org",
			Summary:        "Why radio waves cannot carry or create pathogens.",
			RelevanceScore: 93,
		},
	},
	"Health and Pandemics": {
		{
			Title:          "COVID-19 Myths and the Evidence Against Them",
			URL:            "https://www.who.int/emergencies/diseases/novel-coronavirus-2019/advice-for-public/myth-busters",
			Source:         "WHO",
			Summary:        "Official myth-busting resource for pandemic misinformation.",
			RelevanceScore: 97,
		},
	},
	"Health and Medicine": {
		{
			Title:          "Why 'Miracle Cure' Claims Should Raise Red Flags",
			URL:            "https://www.fda.gov/consumers/health-fraud-scams",
			Source:         "FDA",
			Summary:        "How to recognize health fraud and too-good-to-be-true cures.",
			RelevanceScore: 94,
		},
		{
			Title:          "Single Foods Don't Cure Diseases",
			URL:            "https://www.snopes.com/fact-check/food-cure-claims/",
			Source:         "Snopes",
			Summary:        "A recurring pattern in nutrition misinformation, examined.",
			RelevanceScore: 92,
		},
	},
}
