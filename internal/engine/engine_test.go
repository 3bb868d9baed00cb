package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/filterize/credengine/internal/model"
)

// testConfig returns a config with caching in a temp dir and no providers
// registered, so tests exercise the local pipeline deterministically.
func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	cfg.Providers.Ollama.BaseURL = ""
	cfg.FactCheck.Feeds = nil
	return cfg
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func TestAnalyze_LocalPreference(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.Analyze(context.Background(), []byte("The weather today is mild."), model.ContentText, AnalyzeOptions{Prefer: PreferLocal})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.ProviderUsed != "" {
		t.Errorf("ProviderUsed = %q, want empty for local preference", result.ProviderUsed)
	}
	if eng.Metrics().Get("provider_calls") != 0 {
		t.Error("local preference should not attempt providers")
	}
	if eng.Metrics().Get("local_used") != 1 {
		t.Errorf("local_used = %d, want 1", eng.Metrics().Get("local_used"))
	}
	if result.RequestID == "" {
		t.Error("missing request ID")
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("missing timestamp")
	}
	if result.Cached {
		t.Error("first analysis should not be marked cached")
	}
}

func TestAnalyze_CacheRoundTrip(t *testing.T) {
	eng := newTestEngine(t)
	content := []byte("Some article body about local news events.")

	first, err := eng.Analyze(context.Background(), content, model.ContentText, AnalyzeOptions{Prefer: PreferLocal})
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := eng.Analyze(context.Background(), content, model.ContentText, AnalyzeOptions{Prefer: PreferLocal})
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}

	if !second.Cached {
		t.Error("second identical analysis should come from the cache")
	}
	if second.RequestID != first.RequestID {
		t.Errorf("cached RequestID = %q, want %q", second.RequestID, first.RequestID)
	}
	if second.Probability != first.Probability {
		t.Errorf("cached Probability = %v, want %v", second.Probability, first.Probability)
	}
	if eng.Metrics().Get("cache_hits") != 1 {
		t.Errorf("cache_hits = %d, want 1", eng.Metrics().Get("cache_hits"))
	}
}

func TestAnalyze_NoProviderDegradesToLocal(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.Analyze(context.Background(), []byte("Plain informative content."), model.ContentText, AnalyzeOptions{Prefer: PreferAuto})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.ProviderUsed != "" {
		t.Errorf("ProviderUsed = %q with empty registry", result.ProviderUsed)
	}
	for _, f := range result.Flags {
		if f == "provider_unavailable" {
			t.Error("auto preference should not flag a missing provider")
		}
	}
	if len(result.MethodsUsed) == 0 {
		t.Error("local detectors should still report methods")
	}
}

func TestAnalyze_ProviderInsistFlagsUnavailable(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.Analyze(context.Background(), []byte("Plain informative content."), model.ContentText, AnalyzeOptions{Prefer: PreferProvider})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	found := false
	for _, f := range result.Flags {
		if f == "provider_unavailable" {
			found = true
		}
	}
	if !found {
		t.Errorf("flags = %v, want provider_unavailable", result.Flags)
	}
}

func TestAnalyze_UnknownPreference(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.Analyze(context.Background(), []byte("x"), model.ContentText, AnalyzeOptions{Prefer: "fastest"}); err == nil {
		t.Error("expected error for unknown preference")
	}
}

func TestAnalyzeInput(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.AnalyzeInput(context.Background(), "Short batch input line.", model.ContentText)
	if err != nil {
		t.Fatalf("AnalyzeInput: %v", err)
	}
	if result.Probability < 0 || result.Probability > 1 {
		t.Errorf("probability out of range: %v", result.Probability)
	}
}

func TestFactCheck_DisputedKnowledgeClaim(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.FactCheck(context.Background(), "Scientists discovered that the earth is flat and NASA covers it up.")
	if err != nil {
		t.Fatalf("FactCheck: %v", err)
	}

	if len(result.DisputedClaims) == 0 {
		t.Fatal("expected the flat-earth claim to be disputed")
	}
	for _, c := range result.VerifiedClaims {
		if c.Verified == nil || !*c.Verified {
			t.Errorf("unverified claim in verified bucket: %+v", c)
		}
	}
	for _, c := range result.DisputedClaims {
		if c.Verified != nil && *c.Verified {
			t.Errorf("verified claim in disputed bucket: %+v", c)
		}
	}
	if result.DisputedClaims[0].Source != "knowledge_table" {
		t.Errorf("Source = %q, want knowledge_table", result.DisputedClaims[0].Source)
	}

	// All claims disputed with high confidence lands on the floor.
	if result.Score != 20 {
		t.Errorf("Score = %d, want 20", result.Score)
	}
	if len(result.RelatedArticles) == 0 {
		t.Error("expected related articles from the catalog")
	}
	if result.RequestID == "" {
		t.Error("missing request ID")
	}
}

func TestFactCheck_NoClaims(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.FactCheck(context.Background(), "Hello.")
	if err != nil {
		t.Fatalf("FactCheck: %v", err)
	}
	if len(result.VerifiedClaims) != 0 || len(result.DisputedClaims) != 0 {
		t.Errorf("expected no claims, got %d/%d", len(result.VerifiedClaims), len(result.DisputedClaims))
	}
	if result.Score != 50 {
		t.Errorf("Score = %d, want neutral 50", result.Score)
	}
}

func TestFactCheck_CacheRoundTrip(t *testing.T) {
	eng := newTestEngine(t)
	content := "Research confirms that regular exercise improves cardiovascular health."

	first, err := eng.FactCheck(context.Background(), content)
	if err != nil {
		t.Fatalf("first FactCheck: %v", err)
	}
	second, err := eng.FactCheck(context.Background(), content)
	if err != nil {
		t.Fatalf("second FactCheck: %v", err)
	}

	if !second.Cached {
		t.Error("second identical check should come from the cache")
	}
	if second.RequestID != first.RequestID {
		t.Errorf("cached RequestID = %q, want %q", second.RequestID, first.RequestID)
	}
}

func TestAnalyze_URLFetchFailureDegrades(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.Analyze(context.Background(), []byte("http://127.0.0.1:1/nothing"), model.ContentURL, AnalyzeOptions{Prefer: PreferLocal})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	found := false
	for _, f := range result.Flags {
		if strings.HasPrefix(f, "fetch_error:") {
			found = true
		}
	}
	if !found {
		t.Errorf("flags = %v, want a fetch_error flag", result.Flags)
	}
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	eng, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil): %v", err)
	}
	if eng.cfg == nil {
		t.Fatal("config not defaulted")
	}
}
