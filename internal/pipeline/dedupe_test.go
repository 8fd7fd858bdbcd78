package pipeline

import (
	"testing"
	"time"

	"newsagent/internal/core"
)

func timed(t time.Time) *time.Time { return &t }

func TestDedupeKeepsDistinctURLs(t *testing.T) {
	items := []core.ArticleCandidate{
		{Title: "A", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
	}

	got := DedupeByCanonicalURL(items)

	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
}

func TestDedupeCollapsesTrackingVariants(t *testing.T) {
	items := []core.ArticleCandidate{
		{Title: "Plain", URL: "https://example.com/story"},
		{Title: "Tracked", URL: "https://example.com/story?utm_source=mail"},
	}

	got := DedupeByCanonicalURL(items)

	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
}

func TestDedupeTimestampBeatsNone(t *testing.T) {
	now := time.Now().UTC()

	// Regardless of input order, the timestamped candidate is kept.
	orders := [][]core.ArticleCandidate{
		{
			{Title: "untimed", URL: "https://example.com/s", Summary: "a very long summary indeed"},
			{Title: "timed", URL: "https://example.com/s", PublishedAt: timed(now)},
		},
		{
			{Title: "timed", URL: "https://example.com/s", PublishedAt: timed(now)},
			{Title: "untimed", URL: "https://example.com/s", Summary: "a very long summary indeed"},
		},
	}

	for i, items := range orders {
		got := DedupeByCanonicalURL(items)
		if len(got) != 1 {
			t.Fatalf("order %d: expected 1 item, got %d", i, len(got))
		}
		if got[0].PublishedAt == nil {
			t.Errorf("order %d: kept candidate has no timestamp", i)
		}
	}
}

func TestDedupeNewerTimestampWins(t *testing.T) {
	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)

	items := []core.ArticleCandidate{
		{Title: "older", URL: "https://example.com/s", PublishedAt: timed(older)},
		{Title: "newer", URL: "https://example.com/s", PublishedAt: timed(newer)},
	}

	got := DedupeByCanonicalURL(items)

	if len(got) != 1 || got[0].Title != "newer" {
		t.Fatalf("expected newer kept, got %+v", got)
	}

	// Equal timestamps keep the first seen.
	items = []core.ArticleCandidate{
		{Title: "first", URL: "https://example.com/s", PublishedAt: timed(older)},
		{Title: "second", URL: "https://example.com/s", PublishedAt: timed(older)},
	}
	got = DedupeByCanonicalURL(items)
	if got[0].Title != "first" {
		t.Errorf("expected first kept on equal timestamps, got %s", got[0].Title)
	}
}

func TestDedupeLongerSummaryWinsWhenBothUntimed(t *testing.T) {
	items := []core.ArticleCandidate{
		{Title: "short", URL: "https://example.com/s", Summary: "brief"},
		{Title: "long", URL: "https://example.com/s", Summary: "a much more detailed summary"},
	}

	got := DedupeByCanonicalURL(items)

	if len(got) != 1 || got[0].Title != "long" {
		t.Fatalf("expected longer summary kept, got %+v", got)
	}
}

func TestDedupePreservesFirstSeenKeyOrder(t *testing.T) {
	now := time.Now().UTC()
	items := []core.ArticleCandidate{
		{Title: "b1", URL: "https://example.com/b", PublishedAt: timed(now.Add(-time.Hour))},
		{Title: "a1", URL: "https://example.com/a", PublishedAt: timed(now)},
		{Title: "b2", URL: "https://example.com/b?utm_source=x", PublishedAt: timed(now)},
	}

	got := DedupeByCanonicalURL(items)

	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	// Key /b was seen first, so its (replaced) winner stays in position 0.
	if got[0].Title != "b2" || got[1].Title != "a1" {
		t.Errorf("unexpected order: %s, %s", got[0].Title, got[1].Title)
	}
}
