package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/filterize/credengine/internal/model"
)

func testRouterOptions() RouterOptions {
	return RouterOptions{
		MaxRetries:  2,
		Backoff:     time.Millisecond,
		CallTimeout: time.Second,
	}
}

func analysisRequest() Request {
	return Request{
		Content:     []byte("sample content"),
		ContentType: model.ContentText,
		Task:        model.TaskAnalysis,
	}
}

func TestRouter_Select_RequestedFirst(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewFake("openai", "{}"))
	reg.Register(NewFake("anthropic", "{}"))
	reg.Register(NewFake("ollama", "{}"))

	r := NewRouter(reg, testRouterOptions())

	order := r.Select(model.ContentText, model.TaskAnalysis, "ollama")
	if len(order) != 3 || order[0] != "ollama" {
		t.Errorf("expected requested provider first, got %v", order)
	}

	order = r.Select(model.ContentText, model.TaskSummarize, "")
	if len(order) == 0 || order[0] != "anthropic" {
		t.Errorf("expected summarize preference order, got %v", order)
	}
}

func TestRouter_Select_SkipsIncapableProviders(t *testing.T) {
	reg := NewRegistry()
	textOnly := NewFake("openai", "{}")
	reg.Register(textOnly)

	r := NewRouter(reg, testRouterOptions())

	if order := r.Select(model.ContentImage, model.TaskAnalysis, ""); len(order) != 0 {
		t.Errorf("expected no candidates for unsupported content type, got %v", order)
	}
}

func TestRouter_RetriesTransientThenSucceeds(t *testing.T) {
	f := NewFake("openai", `{"score": 80}`)
	f.Errs = []error{
		Transient(errors.New("rate limited")),
		Transient(errors.New("rate limited")),
	}

	reg := NewRegistry()
	reg.Register(f)
	r := NewRouter(reg, testRouterOptions())

	resp, used, err := r.CallWithFallback(context.Background(), analysisRequest(), "")
	if err != nil {
		t.Fatalf("CallWithFallback: %v", err)
	}
	if used != "openai" {
		t.Errorf("used = %q, want openai", used)
	}
	if resp.Analysis["score"] != float64(80) {
		t.Errorf("analysis = %v", resp.Analysis)
	}
	if f.CallCount() != 3 {
		t.Errorf("expected 3 calls (first attempt plus two retries), got %d", f.CallCount())
	}
}

func TestRouter_ExhaustsRetriesBeforeFallback(t *testing.T) {
	primary := NewFake("openai", "{}")
	primary.Errs = []error{
		Transient(errors.New("overloaded")),
		Transient(errors.New("overloaded")),
		Transient(errors.New("overloaded")),
	}
	secondary := NewFake("anthropic", `{"score": 60}`)

	reg := NewRegistry()
	reg.Register(primary)
	reg.Register(secondary)
	r := NewRouter(reg, testRouterOptions())

	resp, used, err := r.CallWithFallback(context.Background(), analysisRequest(), "")
	if err != nil {
		t.Fatalf("CallWithFallback: %v", err)
	}

	// A provider failing all transient attempts is called exactly
	// maxRetries+1 times before the chain advances.
	if primary.CallCount() != 3 {
		t.Errorf("primary calls = %d, want 3", primary.CallCount())
	}
	if used != "anthropic (fallback)" {
		t.Errorf("used = %q, want fallback marker", used)
	}
	if resp == nil {
		t.Fatal("expected response from fallback provider")
	}
}

func TestRouter_PermanentErrorSkipsRetries(t *testing.T) {
	primary := NewFake("openai", "{}")
	primary.Errs = []error{Permanent(errors.New("invalid api key"))}
	secondary := NewFake("anthropic", `{"score": 60}`)

	reg := NewRegistry()
	reg.Register(primary)
	reg.Register(secondary)
	r := NewRouter(reg, testRouterOptions())

	_, used, err := r.CallWithFallback(context.Background(), analysisRequest(), "")
	if err != nil {
		t.Fatalf("CallWithFallback: %v", err)
	}
	if primary.CallCount() != 1 {
		t.Errorf("primary calls = %d, want 1 (no retries on permanent errors)", primary.CallCount())
	}
	if !strings.HasSuffix(used, "(fallback)") {
		t.Errorf("used = %q, want fallback marker", used)
	}
}

func TestRouter_UnavailableProvidersSkipped(t *testing.T) {
	down := NewFake("openai", "{}")
	down.Available = false
	up := NewFake("anthropic", `{"score": 70}`)

	reg := NewRegistry()
	reg.Register(down)
	reg.Register(up)
	r := NewRouter(reg, testRouterOptions())

	_, used, err := r.CallWithFallback(context.Background(), analysisRequest(), "")
	if err != nil {
		t.Fatalf("CallWithFallback: %v", err)
	}
	if down.CallCount() != 0 {
		t.Errorf("unavailable provider was called %d times", down.CallCount())
	}
	if used != "anthropic (fallback)" {
		t.Errorf("used = %q", used)
	}
}

func TestRouter_AllUnavailableReturnsErrNoProvider(t *testing.T) {
	down := NewFake("openai", "{}")
	down.Available = false

	reg := NewRegistry()
	reg.Register(down)
	r := NewRouter(reg, testRouterOptions())

	_, _, err := r.CallWithFallback(context.Background(), analysisRequest(), "")
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("err = %v, want ErrNoProvider", err)
	}
}

func TestRouter_EmptyRegistryReturnsErrNoProvider(t *testing.T) {
	r := NewRouter(NewRegistry(), testRouterOptions())

	_, _, err := r.CallWithFallback(context.Background(), analysisRequest(), "")
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("err = %v, want ErrNoProvider", err)
	}
}
