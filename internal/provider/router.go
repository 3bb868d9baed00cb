package provider

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/filterize/credengine/internal/model"
)

// prefKey indexes the static preference table.
type prefKey struct {
	ContentType model.ContentType
	Task        model.Task
}

// defaultPreferences orders providers per (content type, task). Pairs not
// listed fall back to registration order.
var defaultPreferences = map[prefKey][]string{
	{model.ContentText, model.TaskFactCheck}: {"openai", "anthropic", "ollama"},
	{model.ContentText, model.TaskAnalysis}:  {"openai", "anthropic", "ollama"},
	{model.ContentText, model.TaskSummarize}: {"anthropic", "openai", "ollama"},
	{model.ContentURL, model.TaskAnalysis}:   {"openai", "anthropic", "ollama"},
	{model.ContentURL, model.TaskFactCheck}:  {"openai", "anthropic", "ollama"},
}

// Router selects a provider for each request and drives the fallback
// chain: bounded retries with exponential backoff on the selected
// provider, then the next provider in preference order, then ErrNoProvider
// so the engine can answer from local detectors.
type Router struct {
	registry    *Registry
	prefs       map[prefKey][]string
	limiter     *Limiter
	maxRetries  uint64
	backoff     time.Duration
	callTimeout time.Duration
	verbose     bool
}

// RouterOptions tune the router's call discipline.
type RouterOptions struct {
	MaxRetries  int           // extra attempts after the first, per provider
	Backoff     time.Duration // exponential base
	CallTimeout time.Duration // per attempt
	RateLimit   float64       // requests/sec per provider
	Verbose     bool
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *Registry, opts RouterOptions) *Router {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 600 * time.Millisecond
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 3 * time.Second
	}
	var limiter *Limiter
	if opts.RateLimit > 0 {
		limiter = NewLimiter(opts.RateLimit, 5)
	}
	return &Router{
		registry:    registry,
		prefs:       defaultPreferences,
		limiter:     limiter,
		maxRetries:  uint64(opts.MaxRetries),
		backoff:     opts.Backoff,
		callTimeout: opts.CallTimeout,
		verbose:     opts.Verbose,
	}
}

// Select returns the ordered candidate names for a request: the explicitly
// requested provider first, then the preference table, then registration
// order. Only providers whose capabilities cover the content type qualify.
func (r *Router) Select(ct model.ContentType, task model.Task, requested string) []string {
	var order []string
	seen := make(map[string]bool)

	add := func(name string) {
		if seen[name] {
			return
		}
		p, ok := r.registry.Get(name)
		if !ok || !CanHandle(p, ct) {
			return
		}
		seen[name] = true
		order = append(order, name)
	}

	if requested != "" {
		add(requested)
	}
	for _, name := range r.prefs[prefKey{ct, task}] {
		add(name)
	}
	for _, name := range r.registry.Names() {
		add(name)
	}
	return order
}

// CallWithFallback walks the candidate chain. It returns the response and
// the provider that served it, suffixed " (fallback)" when a non-primary
// candidate answered. ErrNoProvider means every candidate was unavailable
// or exhausted; the caller serves its local result.
func (r *Router) CallWithFallback(ctx context.Context, req Request, requested string) (*Response, string, error) {
	candidates := r.Select(req.ContentType, req.Task, requested)
	if len(candidates) == 0 {
		return nil, "", ErrNoProvider
	}

	var lastErr error
	for i, name := range candidates {
		p, _ := r.registry.Get(name)

		// Availability can change between requests, so check every time.
		if !p.IsAvailable(ctx) {
			r.logf("provider %s unavailable, moving on", name)
			lastErr = fmt.Errorf("provider %s unavailable", name)
			continue
		}

		resp, err := r.callOne(ctx, p, req)
		if err != nil {
			r.logf("provider %s failed after retries: %v", name, err)
			lastErr = err
			continue
		}

		used := name
		if i > 0 {
			used += " (fallback)"
		}
		return resp, used, nil
	}

	if lastErr != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNoProvider, lastErr)
	}
	return nil, "", ErrNoProvider
}

// callOne issues one provider's attempts: a per-attempt timeout, retries
// only for transient-classified errors, exponential backoff between tries.
func (r *Router) callOne(ctx context.Context, p Provider, req Request) (*Response, error) {
	var resp *Response

	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx, p.Name()); err != nil {
				return err
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		defer cancel()

		got, err := p.Call(attemptCtx, req)
		if err != nil {
			if IsTransient(err) {
				r.logf("provider %s transient failure: %v", p.Name(), err)
				return retry.RetryableError(err)
			}
			return err
		}
		resp = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *Router) logf(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
