// Package rehost downloads gallery images from the source site and
// re-stores them in our own object storage, so listing pages never hot
// link the competitor's CDN.
package rehost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/poolvilladirect/villaimport/internal/logger"
)

// Raw download cap, before any transcoding downstream.
const maxImageBytes = 20 << 20

// ObjectStore stores image bytes and returns a public URL. The
// concrete backend (bucket service, CDN) lives outside this module.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Config holds rehoster configuration. Retries are bounded with a
// fixed delay, deliberately not exponential.
type Config struct {
	MaxAttempts int
	RetryDelay  time.Duration
	Client      *http.Client
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		Client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Rehoster fetches external images and hands them to an ObjectStore.
type Rehoster struct {
	store  ObjectStore
	config Config
}

// New creates a Rehoster.
func New(store ObjectStore, cfg Config) *Rehoster {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultConfig().RetryDelay
	}
	if cfg.Client == nil {
		cfg.Client = DefaultConfig().Client
	}
	return &Rehoster{store: store, config: cfg}
}

// Rehost downloads one image URL (retrying transient failures) and
// stores it, returning the public URL of the stored copy.
func (r *Rehoster) Rehost(ctx context.Context, imageURL string) (string, error) {
	var (
		data        []byte
		contentType string
		lastErr     error
	)

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			logger.Warn("retrying image download",
				"url", imageURL, "attempt", attempt, "max", r.config.MaxAttempts)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.config.RetryDelay):
			}
		}

		data, contentType, lastErr = r.download(ctx, imageURL)
		if lastErr == nil {
			break
		}
		logger.Debug("image download failed", "url", imageURL, "attempt", attempt, "error", lastErr)
	}
	if lastErr != nil {
		return "", fmt.Errorf("all %d attempts failed: %w", r.config.MaxAttempts, lastErr)
	}

	key := storageKey(imageURL, contentType)
	publicURL, err := r.store.Put(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	logger.Info("image rehosted", "source", imageURL, "key", key, "bytes", len(data))
	return publicURL, nil
}

func (r *Rehoster) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := r.config.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("not an image: %s", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	return data, contentType, nil
}

// storageKey derives a unique object key, keeping the original
// extension where the URL has one.
func storageKey(imageURL, contentType string) string {
	ext := path.Ext(strings.SplitN(imageURL, "?", 2)[0])
	if ext == "" {
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		case "image/gif":
			ext = ".gif"
		default:
			ext = ".bin"
		}
	}
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
}
