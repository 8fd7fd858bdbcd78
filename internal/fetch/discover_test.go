package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDiscoverFeedsFindsAlternateLinks(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
  <link rel="alternate" type="application/rss+xml" href="/rss.xml">
  <link rel="alternate" type="application/atom+xml" href="https://feeds.example.com/atom">
  <link rel="alternate" type="application/rss+xml" href="/rss.xml">
  <link rel="stylesheet" href="/style.css">
  <link rel="alternate" type="application/json" href="/feed.json">
</head>
<body></body>
</html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	g := NewHTTPGatherer(2*time.Second, "newsagent-test/1.0")
	feeds, err := g.DiscoverFeeds(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		server.URL + "/rss.xml",
		"https://feeds.example.com/atom",
	}
	if len(feeds) != len(want) {
		t.Fatalf("expected %d feeds, got %v", len(want), feeds)
	}
	for i := range want {
		if feeds[i] != want[i] {
			t.Errorf("feed %d: got %s, want %s", i, feeds[i], want[i])
		}
	}
}

func TestDiscoverFeedsErrorsOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	g := NewHTTPGatherer(2*time.Second, "newsagent-test/1.0")
	if _, err := g.DiscoverFeeds(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 page, got nil")
	}
}

func TestDiscoverFeedsNoLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head></head><body>nothing here</body></html>")
	}))
	defer server.Close()

	g := NewHTTPGatherer(2*time.Second, "newsagent-test/1.0")
	feeds, err := g.DiscoverFeeds(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feeds) != 0 {
		t.Fatalf("expected no feeds, got %v", feeds)
	}
}
