package provider

import (
	"context"
	"sync"

	"github.com/filterize/credengine/internal/model"
)

// FakeProvider is a configurable in-memory provider for tests. Errs are
// consumed one per call; once exhausted, calls succeed with Response.
type FakeProvider struct {
	ProviderName string
	Types        []model.ContentType
	Available    bool
	Response     *Response
	Errs         []error

	mu        sync.Mutex
	callCount int
}

// NewFake creates a fake provider that always succeeds with the given raw
// analysis text.
func NewFake(name, raw string) *FakeProvider {
	return &FakeProvider{
		ProviderName: name,
		Types:        []model.ContentType{model.ContentText, model.ContentURL},
		Available:    true,
		Response: &Response{
			Analysis: ParseAnalysis(raw),
			Raw:      raw,
			Model:    "fake",
		},
	}
}

func (f *FakeProvider) Name() string { return f.ProviderName }

func (f *FakeProvider) Capabilities() []model.ContentType { return f.Types }

func (f *FakeProvider) IsAvailable(ctx context.Context) bool { return f.Available }

func (f *FakeProvider) Call(ctx context.Context, req Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.callCount++
	if len(f.Errs) > 0 {
		err := f.Errs[0]
		f.Errs = f.Errs[1:]
		return nil, err
	}
	return f.Response, nil
}

// CallCount reports how many times Call ran.
func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}
