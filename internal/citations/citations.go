// Package citations builds source references for digest cards. Every bullet
// a card emits must be traceable to at least one citation from here.
package citations

import (
	"net/url"
	"strings"

	"newsagent/internal/core"
)

// FromCandidate derives the candidate's own citation.
func FromCandidate(c core.ArticleCandidate) core.Citation {
	return core.Citation{
		Publisher:   c.Publisher,
		URL:         c.URL,
		PublishedAt: c.PublishedAt,
	}
}

// Merge builds the flat sources list for a cluster: one citation per distinct
// URL, in first-seen order across the cluster members.
func Merge(cluster []core.ArticleCandidate) []core.Citation {
	var (
		merged []core.Citation
		seen   = make(map[string]bool)
	)
	for _, member := range cluster {
		if seen[member.URL] {
			continue
		}
		seen[member.URL] = true
		merged = append(merged, FromCandidate(member))
	}
	return merged
}

// Confidence tags a merged citation set: multi_source when the citations span
// at least two distinct publisher names, single_source otherwise.
func Confidence(sources []core.Citation) core.ConfidenceTag {
	publishers := make(map[string]bool)
	for _, c := range sources {
		publishers[c.Publisher] = true
	}
	if len(publishers) >= 2 {
		return core.ConfidenceMultiSource
	}
	return core.ConfidenceSingleSource
}

// PublisherFromURL extracts a displayable publisher name from a URL host,
// stripping a leading www. Used when a candidate arrives without a publisher
// name.
func PublisherFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}
