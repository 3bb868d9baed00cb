package report

import (
	"reflect"
	"testing"

	"github.com/filterize/credengine/internal/model"
)

func TestRankArticles_SortsByRelevanceDesc(t *testing.T) {
	in := []model.Article{
		{Title: "B", RelevanceScore: 80},
		{Title: "A", RelevanceScore: 95},
		{Title: "C", RelevanceScore: 60},
	}

	out := RankArticles(in, 0)

	want := []string{"A", "B", "C"}
	for i, title := range want {
		if out[i].Title != title {
			t.Fatalf("out = %+v, want order %v", out, want)
		}
	}
}

func TestRankArticles_Idempotent(t *testing.T) {
	in := []model.Article{
		{Title: "A", RelevanceScore: 95},
		{Title: "B", RelevanceScore: 90},
		{Title: "C", RelevanceScore: 90},
		{Title: "D", RelevanceScore: 70},
	}

	once := RankArticles(in, 0)
	twice := RankArticles(once, 0)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("ranking is not idempotent: %+v vs %+v", once, twice)
	}
}

func TestRankArticles_StableTies(t *testing.T) {
	in := []model.Article{
		{Title: "first tie", RelevanceScore: 90},
		{Title: "second tie", RelevanceScore: 90},
		{Title: "third tie", RelevanceScore: 90},
	}

	out := RankArticles(in, 0)
	for i, a := range in {
		if out[i].Title != a.Title {
			t.Errorf("tie order changed: %+v", out)
		}
	}
}

func TestRankArticles_DedupeByTitle(t *testing.T) {
	in := []model.Article{
		{Title: "Same Story", URL: "https://a.example.com", RelevanceScore: 90},
		{Title: "same story", URL: "https://b.example.com", RelevanceScore: 95},
		{Title: "Other", RelevanceScore: 80},
	}

	out := RankArticles(in, 0)
	if len(out) != 2 {
		t.Fatalf("expected 2 articles after dedupe, got %d", len(out))
	}
	// First occurrence wins regardless of later scores.
	if out[0].URL != "https://a.example.com" {
		t.Errorf("out[0] = %+v", out[0])
	}
}

func TestRankArticles_CapAndEmptyTitles(t *testing.T) {
	in := []model.Article{
		{Title: "A", RelevanceScore: 90},
		{Title: "", RelevanceScore: 99},
		{Title: "B", RelevanceScore: 80},
		{Title: "C", RelevanceScore: 70},
	}

	out := RankArticles(in, 2)
	if len(out) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(out))
	}
	if out[0].Title != "A" || out[1].Title != "B" {
		t.Errorf("out = %+v", out)
	}
}

func TestRankArticles_Empty(t *testing.T) {
	if out := RankArticles(nil, 5); len(out) != 0 {
		t.Errorf("expected empty result, got %+v", out)
	}
}
