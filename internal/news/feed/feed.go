// Package feed reads RSS and Atom feeds into news entries.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/zappabad/lojistik/internal/news"
)

// DefaultTimeout is the HTTP timeout applied to each feed request.
const DefaultTimeout = 30 * time.Second

// Fetcher reads feeds over HTTP with gofeed.
type Fetcher struct {
	parser  *gofeed.Parser
	limiter *rate.Limiter
}

// Option configures the Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client used by the parser.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.parser.Client = c
	}
}

// WithRateLimit limits feed requests per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(f *Fetcher) {
		if requestsPerSecond > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: DefaultTimeout}
	p.UserAgent = "Mozilla/5.0 (lojistik)"

	f := &Fetcher{
		parser:  p,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the entries of src in feed order.
func (f *Fetcher) Fetch(ctx context.Context, src news.Source) ([]news.Entry, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.Name, err)
	}
	return Entries(src, parsed), nil
}

// Entries converts parsed items, keeping feed order.
func Entries(src news.Source, parsed *gofeed.Feed) []news.Entry {
	out := make([]news.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		e := news.Entry{
			Source: src.Name,
			Tag:    src.Tag,
			Title:  item.Title,
		}
		switch {
		case item.PublishedParsed != nil:
			e.Published = item.PublishedParsed
		case item.UpdatedParsed != nil:
			e.Published = item.UpdatedParsed
		}
		out = append(out, e)
	}
	return out
}
