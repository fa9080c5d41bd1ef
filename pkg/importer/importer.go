package importer

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/poolvilladirect/villaimport/internal/logger"
	"github.com/poolvilladirect/villaimport/pkg/fetcher"
)

// Config holds importer configuration.
type Config struct {
	Fetcher        fetcher.Fetcher
	UserAgent      string
	Timeout        time.Duration
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		AllowedOrigins: defaultAllowedOrigins,
	}
}

// Option configures an Importer.
type Option func(*Config)

// WithFetcher injects a custom page fetcher (e.g. the dynamic one for
// JS-rendered pages).
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) { c.Fetcher = f }
}

// WithTimeout bounds the outbound page fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithUserAgent overrides the fetch User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) { c.UserAgent = ua }
}

// WithAllowedOrigins replaces the source origin allow-list.
func WithAllowedOrigins(origins []string) Option {
	return func(c *Config) { c.AllowedOrigins = origins }
}

// Importer drives the import pipeline: validate the URL, fetch the
// page, then run the extractors over the same immutable HTML. It holds
// no per-request state; concurrent imports are independent.
type Importer struct {
	fetcher fetcher.Fetcher
	config  Config
}

// New creates an Importer. Without WithFetcher it uses the static
// fetcher.
func New(opts ...Option) *Importer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := cfg.Fetcher
	if f == nil {
		f = fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
	}

	return &Importer{fetcher: f, config: cfg}
}

// Validate checks a listing URL against the configured allow-list
// without any I/O. A non-nil result is a *ValidationError.
func (i *Importer) Validate(rawURL string) error {
	return validateURL(rawURL, i.config.AllowedOrigins)
}

// Import runs the full pipeline for one listing URL. It fails only on
// invalid input (*ValidationError) or a failed fetch (*FetchError);
// every extraction gap degrades to the documented defaults instead.
func (i *Importer) Import(ctx context.Context, rawURL string) (*ImportedVilla, error) {
	u := strings.TrimSpace(rawURL)
	if err := validateURL(u, i.config.AllowedOrigins); err != nil {
		return nil, err
	}

	content, err := i.fetcher.Fetch(ctx, u, fetcher.Options{
		UserAgent: i.config.UserAgent,
		Timeout:   i.config.Timeout,
	})
	if err != nil {
		logger.Debug("listing fetch failed", "url", u, "status", content.StatusCode, "error", err)
		return nil, &FetchError{StatusCode: content.StatusCode, Err: err}
	}
	logger.Debug("listing fetched", "url", u, "status", content.StatusCode, "bytes", len(content.HTML))

	return extractVilla(content.HTML, u), nil
}

// Close releases fetcher resources.
func (i *Importer) Close() error {
	if i.fetcher != nil {
		return i.fetcher.Close()
	}
	return nil
}

// extractVilla assembles the final record from fetched HTML. The three
// extraction paths read the same text buffer and none of them can fail
// the import.
func extractVilla(html, sourceURL string) *ImportedVilla {
	v := &ImportedVilla{
		Name:      defaultName,
		Location:  defaultLocation,
		Beds:      1,
		Baths:     1,
		SourceURL: sourceURL,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("listing HTML unparsable, keeping defaults", "url", sourceURL, "error", err)
	} else {
		f := extractFacts(doc)
		v.Name = f.name
		v.Location = truncateRunes(f.location, maxLocationRunes)
		v.Beds = f.beds
		v.Baths = f.baths
		v.Description = f.description
		v.MainVideoID = f.videoID
	}

	accommodation, review := extractGallery(html)
	v.Gallery = buildGallery(accommodation, review)

	v.AccountingSummary, v.EstimatedAnnualRevenue = reconstructRevenue(html)

	return v
}
