package citations

import (
	"testing"
	"time"

	"newsagent/internal/core"
)

func TestFromCandidate(t *testing.T) {
	now := time.Now().UTC()
	c := core.ArticleCandidate{
		Title:       "Story",
		URL:         "https://example.com/story",
		Publisher:   "Example News",
		PublishedAt: &now,
	}

	got := FromCandidate(c)

	if got.Publisher != "Example News" || got.URL != "https://example.com/story" {
		t.Errorf("unexpected citation: %+v", got)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(now) {
		t.Errorf("published_at not carried over: %+v", got)
	}
}

func TestMergeDeduplicatesByURL(t *testing.T) {
	cluster := []core.ArticleCandidate{
		{Publisher: "A", URL: "https://a.com/1"},
		{Publisher: "B", URL: "https://b.com/1"},
		{Publisher: "A", URL: "https://a.com/1"},
	}

	got := Merge(cluster)

	if len(got) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(got))
	}
	if got[0].URL != "https://a.com/1" || got[1].URL != "https://b.com/1" {
		t.Errorf("first-seen order not preserved: %+v", got)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name    string
		sources []core.Citation
		want    core.ConfidenceTag
	}{
		{
			"two publishers",
			[]core.Citation{{Publisher: "A"}, {Publisher: "B"}},
			core.ConfidenceMultiSource,
		},
		{
			"one publisher, two urls",
			[]core.Citation{{Publisher: "A", URL: "u1"}, {Publisher: "A", URL: "u2"}},
			core.ConfidenceSingleSource,
		},
		{
			"single citation",
			[]core.Citation{{Publisher: "A"}},
			core.ConfidenceSingleSource,
		},
		{
			"empty",
			nil,
			core.ConfidenceSingleSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.sources); got != tt.want {
				t.Errorf("Confidence(%v) = %s, want %s", tt.sources, got, tt.want)
			}
		})
	}
}

func TestPublisherFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/story", "example.com"},
		{"https://news.example.com/story", "news.example.com"},
		{"https://EXAMPLE.com", "example.com"},
		{"not a url at all\x7f", ""},
	}

	for _, tt := range tests {
		if got := PublisherFromURL(tt.in); got != tt.want {
			t.Errorf("PublisherFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
