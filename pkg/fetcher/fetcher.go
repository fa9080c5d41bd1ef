// Package fetcher handles listing page retrieval. The static fetcher
// covers the source site today; the dynamic one exists for the day the
// calendar payload moves behind client-side rendering.
package fetcher

import (
	"context"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type ("static", "dynamic").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodySize  int               // response body cap in bytes, 0 = fetcher default
	WaitDuration time.Duration     // additional wait after load (dynamic only)
	Headers      map[string]string // extra request headers
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Chrome user agent for better compatibility with the source site.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Browser-equivalent request headers sent with every fetch.
const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptLanguageHeader = "th-TH,th;q=0.9,en;q=0.8"
)
