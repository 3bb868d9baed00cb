package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/filterize/credengine/internal/cache"
	"github.com/filterize/credengine/internal/detect"
	"github.com/filterize/credengine/internal/factcheck"
	"github.com/filterize/credengine/internal/fetch"
	"github.com/filterize/credengine/internal/model"
	"github.com/filterize/credengine/internal/provider"
	"github.com/filterize/credengine/internal/report"
	"github.com/filterize/credengine/internal/score"
)

// factCheckSetID versions the fact-check pipeline for cache keys.
const factCheckSetID = "factcheck/v1"

// Preference values for AnalyzeOptions.Prefer.
const (
	PreferLocal    = "local"
	PreferProvider = "provider"
	PreferAuto     = "auto"
)

// AnalyzeOptions select the routing policy for one request.
type AnalyzeOptions struct {
	// Prefer is "local" (bypass providers entirely), "provider" (insist
	// on a provider, flagging the result when none answered), or "auto"
	// (providers when available, local otherwise). Empty means auto.
	Prefer string

	// Provider explicitly requests a provider by name; it takes priority
	// when that provider is available.
	Provider string
}

// Engine wires detectors, aggregation, caching, and provider routing into
// the two public operations. It is constructed once at process start and
// shared across requests; the cache is its only mutable state.
type Engine struct {
	cfg        *model.Config
	aggregator *score.Aggregator
	cache      cache.Cache // nil when caching is disabled
	router     *provider.Router
	fetcher    *fetch.Fetcher
	extractor  *factcheck.ClaimExtractor
	verifier   *factcheck.Verifier
	articles   *factcheck.ArticleFinder
	metrics    *Metrics
	verbose    bool
}

// New builds an engine from configuration.
func New(cfg *model.Config) (*Engine, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	registry, err := provider.BuildRegistry(cfg.Providers)
	if err != nil {
		return nil, fmt.Errorf("build provider registry: %w", err)
	}
	router := provider.NewRouter(registry, provider.RouterOptions{
		MaxRetries:  cfg.Providers.MaxRetries,
		Backoff:     cfg.Providers.Backoff,
		CallTimeout: cfg.Providers.CallTimeout,
		RateLimit:   cfg.Providers.RateLimit,
		Verbose:     cfg.Output.Verbose,
	})

	var resultCache cache.Cache
	metricsDir := ""
	if cfg.Cache.Enabled {
		resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.ProviderTTL)
		metricsDir = cfg.Cache.Dir
	}

	table := factcheck.NewKnowledgeTable()
	if cfg.FactCheck.KnowledgePath != "" {
		loaded, err := factcheck.LoadKnowledgeTable(cfg.FactCheck.KnowledgePath)
		if err != nil {
			// A broken override file falls back to built-ins.
			fmt.Fprintf(os.Stderr, "Warning: knowledge table %s: %v\n", cfg.FactCheck.KnowledgePath, err)
		} else {
			table = loaded
		}
	}

	return &Engine{
		cfg:        cfg,
		aggregator: score.NewAggregator(nil),
		cache:      resultCache,
		router:     router,
		fetcher:    fetch.NewFetcher(cfg.HTTP),
		extractor:  factcheck.NewClaimExtractor(cfg.FactCheck.MaxClaims),
		verifier:   factcheck.NewVerifier(table, router),
		articles:   factcheck.NewArticleFinder(cfg.FactCheck.Feeds, cfg.FactCheck.MaxArticles, cfg.Output.Verbose),
		metrics:    NewMetrics(metricsDir),
		verbose:    cfg.Output.Verbose,
	}, nil
}

// Metrics exposes the engine's counters.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Analyze runs the signal-fusion pipeline over one content sample. It
// never surfaces component failures as errors: the worst case is the
// lowest-confidence local result with explanatory flags. The only error
// returned is an unusable request (unknown preference value).
func (e *Engine) Analyze(ctx context.Context, content []byte, ct model.ContentType, opts AnalyzeOptions) (*model.CredibilityResult, error) {
	prefer := opts.Prefer
	if prefer == "" {
		prefer = PreferAuto
	}
	switch prefer {
	case PreferLocal, PreferProvider, PreferAuto:
	default:
		return nil, fmt.Errorf("unknown preference %q", opts.Prefer)
	}

	set := detect.ForContentType(ct)
	key := cache.Fingerprint(content, set.ID, cacheProviderTag(prefer, opts.Provider))

	if cached, ok := e.cacheGet(key); ok {
		var result model.CredibilityResult
		if err := json.Unmarshal(cached, &result); err == nil {
			e.metrics.Inc("cache_hits")
			result.Cached = true
			return &result, nil
		}
	}
	e.metrics.Inc("cache_misses")

	// URL content is fetched and scored as text; a fetch failure degrades
	// to an empty-signal result instead of erroring.
	detectInput := content
	var pipelineFlags []string
	if ct == model.ContentURL {
		page, err := e.fetcher.Fetch(ctx, string(content))
		if err != nil {
			e.logf("fetch failed: %v", err)
			pipelineFlags = append(pipelineFlags, "fetch_error:"+err.Error())
			detectInput = nil
		} else {
			detectInput = []byte(page.Text)
		}
	}

	signals := set.Run(detectInput)
	result := e.aggregator.Aggregate(signals, ct)
	result.Flags = append(pipelineFlags, result.Flags...)

	if prefer != PreferLocal {
		requested := opts.Provider
		if requested == "" {
			requested = e.cfg.Providers.Default
		}
		e.metrics.Inc("provider_calls")
		resp, used, err := e.router.CallWithFallback(ctx, provider.Request{
			Content:     detectInput,
			ContentType: ct,
			Task:        model.TaskAnalysis,
		}, requested)
		switch {
		case err == nil:
			result.ProviderUsed = used
			result.ProviderAnalysis = resp.Analysis
		case errors.Is(err, provider.ErrNoProvider):
			e.metrics.Inc("provider_failures")
			e.metrics.Inc("local_used")
			if prefer == PreferProvider {
				result.Flags = appendUnique(result.Flags, "provider_unavailable")
			}
		default:
			e.metrics.Inc("provider_failures")
			e.metrics.Inc("local_used")
			result.Flags = appendUnique(result.Flags, "provider_error")
		}
	} else {
		e.metrics.Inc("local_used")
	}

	result.RequestID = uuid.NewString()
	result.AnalyzedAt = time.Now().UTC()

	e.cachePut(key, result, result.ProviderUsed != "")
	return result, nil
}

// AnalyzeInput scores a single batch input with default options.
func (e *Engine) AnalyzeInput(ctx context.Context, input string, ct model.ContentType) (*model.CredibilityResult, error) {
	return e.Analyze(ctx, []byte(input), ct, AnalyzeOptions{})
}

// FactCheck extracts claims from text, verifies each one, and folds the
// verdicts into an overall score with related articles.
func (e *Engine) FactCheck(ctx context.Context, content string) (*model.FactCheckResult, error) {
	key := cache.Fingerprint([]byte(content), factCheckSetID, "auto")

	if cached, ok := e.cacheGet(key); ok {
		var result model.FactCheckResult
		if err := json.Unmarshal(cached, &result); err == nil {
			e.metrics.Inc("cache_hits")
			result.Cached = true
			return &result, nil
		}
	}
	e.metrics.Inc("cache_misses")

	claims := e.extractor.Extract(content)

	results := make([]model.VerificationResult, 0, len(claims))
	for _, claim := range claims {
		results = append(results, e.verifier.Verify(ctx, claim))
	}

	verified, disputed := factcheck.Partition(results)
	articles := report.RankArticles(e.articles.Find(ctx, content), e.cfg.FactCheck.MaxArticles)

	result := &model.FactCheckResult{
		Score:           factcheck.Score(results),
		VerifiedClaims:  verified,
		DisputedClaims:  disputed,
		RelatedArticles: articles,
		RequestID:       uuid.NewString(),
		CheckedAt:       time.Now().UTC(),
	}

	e.cachePut(key, result, true)
	return result, nil
}

// cacheGet reads the cache, treating any IO failure as a miss.
func (e *Engine) cacheGet(key string) ([]byte, bool) {
	if e.cache == nil {
		return nil, false
	}
	return e.cache.Get(key)
}

// cachePut stores a result. Provider-backed entries get the configured
// TTL; pure-local results are deterministic and never expire.
func (e *Engine) cachePut(key string, value interface{}, providerBacked bool) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	ttl := cache.NoTTL
	if providerBacked {
		ttl = e.cfg.Cache.ProviderTTL
	}
	if err := e.cache.Set(key, data, ttl); err != nil {
		e.logf("cache write failed: %v", err)
	}
}

// cacheProviderTag derives the provider component of the fingerprint from
// the routing intent, which is stable for identical configuration.
func cacheProviderTag(prefer, requested string) string {
	if prefer == PreferLocal {
		return ""
	}
	if requested != "" {
		return requested
	}
	return "auto"
}

func appendUnique(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	return append(flags, flag)
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
