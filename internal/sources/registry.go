// Package sources loads and queries the feed registry, a YAML file mapping
// regions to publishers and their RSS/Atom feeds.
package sources

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"newsagent/internal/core"
)

// Feed is one RSS/Atom endpoint offered by a publisher.
type Feed struct {
	Name  string     `yaml:"name"`
	URL   string     `yaml:"url"`
	Topic core.Topic `yaml:"topic"`
}

// Publisher groups a publisher's feeds with its domain allowlist. Entries
// whose link falls outside AllowedDomains are dropped at gather time.
type Publisher struct {
	Name           string   `yaml:"name"`
	AllowedDomains []string `yaml:"allowed_domains"`
	Feeds          []Feed   `yaml:"feeds"`
}

// RegionSources holds all publishers configured for one region.
type RegionSources struct {
	Region     core.Region `yaml:"region"`
	Publishers []Publisher `yaml:"publishers"`
}

// Registry is the parsed sources.yaml.
type Registry struct {
	Regions []RegionSources `yaml:"regions"`
}

// Load reads and parses the registry file. A missing or empty file yields an
// empty registry rather than an error, so the service can still start and
// serve fallback digests.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{}, nil
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	reg := &Registry{}
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}

	return reg, nil
}

// Selection pairs a feed with the publisher it belongs to.
type Selection struct {
	Publisher Publisher
	Feed      Feed
}

// FeedsFor returns the feeds matching the requested regions and topics. For a
// publisher in a matching region, feeds with a requested topic are selected;
// a publisher with no feed for any requested topic contributes its daily
// feeds instead, so every matching publisher can still be represented.
func (r *Registry) FeedsFor(regions []core.Region, topics []core.Topic) []Selection {
	wantRegion := make(map[core.Region]bool, len(regions))
	for _, reg := range regions {
		wantRegion[reg] = true
	}
	wantTopic := make(map[core.Topic]bool, len(topics))
	for _, t := range topics {
		wantTopic[t] = true
	}

	var matches []Selection
	for _, rs := range r.Regions {
		if !wantRegion[rs.Region] {
			continue
		}
		for _, pub := range rs.Publishers {
			var pubMatches []Selection
			for _, feed := range pub.Feeds {
				if wantTopic[feed.Topic] {
					pubMatches = append(pubMatches, Selection{Publisher: pub, Feed: feed})
				}
			}
			if len(pubMatches) == 0 {
				for _, feed := range pub.Feeds {
					if feed.Topic == core.TopicDaily {
						pubMatches = append(pubMatches, Selection{Publisher: pub, Feed: feed})
					}
				}
			}
			matches = append(matches, pubMatches...)
		}
	}
	return matches
}

// DomainAllowed reports whether the URL's host matches or is a subdomain of
// any entry in the allowlist.
func DomainAllowed(rawURL string, allowedDomains []string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	domain := strings.ToLower(parsed.Hostname())
	if domain == "" {
		return false
	}

	for _, allowed := range allowedDomains {
		allowed = strings.ToLower(allowed)
		if domain == allowed || strings.HasSuffix(domain, "."+allowed) {
			return true
		}
	}
	return false
}

// Validate sanity-checks the registry and returns one message per problem:
// duplicate publisher names within a region, feeds with invalid topics or
// URLs, and publishers with empty domain allowlists.
func (r *Registry) Validate() []string {
	var problems []string

	for _, rs := range r.Regions {
		if _, err := core.ParseRegion(string(rs.Region)); err != nil {
			problems = append(problems, fmt.Sprintf("region %q: %v", rs.Region, err))
		}

		seen := make(map[string]bool)
		for _, pub := range rs.Publishers {
			if pub.Name == "" {
				problems = append(problems, fmt.Sprintf("region %q: publisher with empty name", rs.Region))
				continue
			}
			if seen[pub.Name] {
				problems = append(problems, fmt.Sprintf("region %q: duplicate publisher %q", rs.Region, pub.Name))
			}
			seen[pub.Name] = true

			if len(pub.AllowedDomains) == 0 {
				problems = append(problems, fmt.Sprintf("publisher %q: empty allowed_domains", pub.Name))
			}

			for _, feed := range pub.Feeds {
				if _, err := core.ParseTopic(string(feed.Topic)); err != nil {
					problems = append(problems, fmt.Sprintf("publisher %q feed %q: %v", pub.Name, feed.Name, err))
				}
				if u, err := url.Parse(feed.URL); err != nil || u.Scheme == "" || u.Host == "" {
					problems = append(problems, fmt.Sprintf("publisher %q feed %q: invalid url %q", pub.Name, feed.Name, feed.URL))
				}
			}
		}
	}

	return problems
}
