// Package fetch retrieves RSS/Atom feeds and normalizes their entries into
// article candidates for the digest pipeline.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsagent/internal/core"
	"newsagent/internal/logger"
	"newsagent/internal/sources"
)

// Gatherer fetches feeds over HTTP. A failed fetch never surfaces as an
// error; the feed just contributes zero candidates.
type Gatherer interface {
	Gather(ctx context.Context, sel sources.Selection, cutoff time.Time) []core.ArticleCandidate
}

// HTTPGatherer is the production Gatherer backed by gofeed.
type HTTPGatherer struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	log       *slog.Logger
}

// NewHTTPGatherer builds a gatherer with a per-request timeout and the
// User-Agent sent to publishers.
func NewHTTPGatherer(timeout time.Duration, userAgent string) *HTTPGatherer {
	return &HTTPGatherer{
		client:    &http.Client{Timeout: timeout},
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
		log:       logger.Get(),
	}
}

// Gather fetches one feed, parses it, and returns the normalized candidates:
// entries with a link inside the publisher's domain allowlist, a parsable
// timestamp at or after the cutoff, and the feed's topic attached. Malformed
// entries are skipped individually.
func (g *HTTPGatherer) Gather(ctx context.Context, sel sources.Selection, cutoff time.Time) []core.ArticleCandidate {
	feed, err := g.fetchFeed(ctx, sel.Feed.URL)
	if err != nil {
		g.log.Warn("Feed fetch failed, skipping",
			"publisher", sel.Publisher.Name,
			"feed", sel.Feed.Name,
			"error", err.Error(),
		)
		return nil
	}

	return Normalize(feed, sel, cutoff)
}

func (g *HTTPGatherer) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	feed, err := g.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed parse failed: %w", err)
	}

	return feed, nil
}

// Normalize converts parsed feed items into article candidates. Split out
// from Gather so tests can feed raw XML without a server.
func Normalize(feed *gofeed.Feed, sel sources.Selection, cutoff time.Time) []core.ArticleCandidate {
	var (
		candidates []core.ArticleCandidate
		seen       = make(map[string]bool)
	)

	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		if u, err := url.Parse(link); err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		if !sources.DomainAllowed(link, sel.Publisher.AllowedDomains) {
			continue
		}

		publishedAt := itemTimestamp(item)
		// Range filtering drops entries we cannot date.
		if publishedAt == nil || publishedAt.Before(cutoff) {
			continue
		}

		// Dedupe by raw URL within this one feed.
		if seen[link] {
			continue
		}
		seen[link] = true

		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = "No Title"
		}

		candidates = append(candidates, core.ArticleCandidate{
			Title:       title,
			URL:         link,
			Publisher:   sel.Publisher.Name,
			PublishedAt: publishedAt,
			Topic:       sel.Feed.Topic,
			Summary:     item.Description,
		})
	}

	return candidates
}

// itemTimestamp picks the best available timestamp, normalized to UTC.
func itemTimestamp(item *gofeed.Item) *time.Time {
	var ts *time.Time
	switch {
	case item.PublishedParsed != nil:
		ts = item.PublishedParsed
	case item.UpdatedParsed != nil:
		ts = item.UpdatedParsed
	default:
		return nil
	}
	utc := ts.UTC()
	return &utc
}
