// Package core defines the data model and stable API vocabulary shared by the
// digest pipeline: topic/region/range enums, article candidates, citations,
// cards, and the request/response contract.
package core

import (
	"fmt"
	"time"
)

// SchemaVersion identifies the response contract version.
const SchemaVersion = "v1"

// Topic is a closed set of topic tags used across the pipeline and the API.
type Topic string

const (
	TopicTech     Topic = "tech"
	TopicFinance  Topic = "finance"
	TopicHealth   Topic = "health"
	TopicLearning Topic = "learning"
	TopicDaily    Topic = "daily" // catch-all, used by both fallback paths
)

// AllTopics lists every valid topic in a stable order.
func AllTopics() []Topic {
	return []Topic{TopicTech, TopicFinance, TopicHealth, TopicLearning, TopicDaily}
}

// ParseTopic validates a raw string against the topic enum.
func ParseTopic(s string) (Topic, error) {
	switch Topic(s) {
	case TopicTech, TopicFinance, TopicHealth, TopicLearning, TopicDaily:
		return Topic(s), nil
	}
	return "", fmt.Errorf("unknown topic %q", s)
}

// Region is a closed set of coverage regions.
type Region string

const (
	RegionCanada Region = "canada"
	RegionUSA    Region = "usa"
	RegionUK     Region = "uk"
	RegionChina  Region = "china"
	RegionGlobal Region = "global"
)

// ParseRegion validates a raw string against the region enum.
func ParseRegion(s string) (Region, error) {
	switch Region(s) {
	case RegionCanada, RegionUSA, RegionUK, RegionChina, RegionGlobal:
		return Region(s), nil
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// TimeRange is the requested lookback window.
type TimeRange string

const (
	Range24h TimeRange = "24h"
	Range3d  TimeRange = "3d"
	Range7d  TimeRange = "7d"
)

// ParseTimeRange validates a raw string against the range enum.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case Range24h, Range3d, Range7d:
		return TimeRange(s), nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Cutoff returns the earliest publication time admitted by the range.
func (r TimeRange) Cutoff(now time.Time) time.Time {
	switch r {
	case Range3d:
		return now.Add(-3 * 24 * time.Hour)
	case Range7d:
		return now.Add(-7 * 24 * time.Hour)
	default: // Range24h
		return now.Add(-24 * time.Hour)
	}
}

// ConfidenceTag marks how well-corroborated a card is.
type ConfidenceTag string

const (
	// ConfidenceMultiSource means the card's citations span at least two
	// distinct publisher names.
	ConfidenceMultiSource ConfidenceTag = "multi_source"
	// ConfidenceSingleSource means every citation comes from one publisher.
	ConfidenceSingleSource ConfidenceTag = "single_source"
)

// QAStatus is the overall verdict attached to a response.
type QAStatus string

const (
	QAPass QAStatus = "pass"
	QAFail QAStatus = "fail"
	// QAFallback marks a mock digest produced when the pipeline could not
	// run at all (no configured feeds, or zero gathered articles).
	QAFallback QAStatus = "fallback"
)

// ArticleCandidate is one normalized feed entry flowing through the pipeline.
// Values are treated as immutable; topic refinement returns a copy.
type ArticleCandidate struct {
	Title       string
	URL         string
	Publisher   string
	PublishedAt *time.Time
	Topic       Topic
	Summary     string
}

// WithTopic returns a copy of the candidate with its topic replaced.
func (a ArticleCandidate) WithTopic(t Topic) ArticleCandidate {
	a.Topic = t
	return a
}

// Citation is a single source reference, derived 1:1 from a candidate.
type Citation struct {
	Publisher   string     `json:"publisher"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Bullet is one line of display text. Citations must never be empty; the QA
// gate re-checks this before a response leaves the pipeline.
type Bullet struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// DigestCard is a single story card in a digest.
type DigestCard struct {
	ID          string        `json:"id"`
	Topic       Topic         `json:"topic"`
	Headline    string        `json:"headline"`
	Publisher   string        `json:"publisher"`
	PublishedAt time.Time     `json:"published_at"`
	Confidence  ConfidenceTag `json:"confidence"`
	Bullets     []Bullet      `json:"bullets"`
	Sources     []Citation    `json:"sources,omitempty"`
}

// Request cap bounds and defaults, mirrored by the HTTP validation layer.
const (
	DefaultMaxCards         = 12
	MaxCardsLimit           = 50
	DefaultMaxCardsPerTopic = 5
	MaxCardsPerTopicLimit   = 20
)

// DigestRequest is the caller-supplied digest specification.
type DigestRequest struct {
	Topics           []Topic   `json:"topics"`
	Range            TimeRange `json:"range"`
	Regions          []Region  `json:"regions"`
	Publishers       []string  `json:"publishers,omitempty"`
	MaxCards         int       `json:"max_cards"`
	MaxCardsPerTopic int       `json:"max_cards_per_topic"`
}

// ApplyDefaults fills unset optional knobs with their documented defaults.
func (r *DigestRequest) ApplyDefaults() {
	if r.Range == "" {
		r.Range = Range24h
	}
	if r.MaxCards == 0 {
		r.MaxCards = DefaultMaxCards
	}
	if r.MaxCardsPerTopic == 0 {
		r.MaxCardsPerTopic = DefaultMaxCardsPerTopic
	}
}

// Validate returns one message per violated request constraint. An empty
// result means the request is well-formed.
func (r DigestRequest) Validate() []string {
	var problems []string

	if len(r.Topics) == 0 {
		problems = append(problems, "topics must not be empty")
	}
	for _, t := range r.Topics {
		if _, err := ParseTopic(string(t)); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(r.Regions) == 0 {
		problems = append(problems, "regions must not be empty")
	}
	for _, reg := range r.Regions {
		if _, err := ParseRegion(string(reg)); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if _, err := ParseTimeRange(string(r.Range)); err != nil {
		problems = append(problems, err.Error())
	}

	if r.MaxCards < 1 || r.MaxCards > MaxCardsLimit {
		problems = append(problems, fmt.Sprintf("max_cards must be between 1 and %d", MaxCardsLimit))
	}
	if r.MaxCardsPerTopic < 1 || r.MaxCardsPerTopic > MaxCardsPerTopicLimit {
		problems = append(problems, fmt.Sprintf("max_cards_per_topic must be between 1 and %d", MaxCardsPerTopicLimit))
	}

	return problems
}

// DigestResponse is the stable contract returned to callers.
type DigestResponse struct {
	SchemaVersion string        `json:"schema_version"`
	GeneratedAt   time.Time     `json:"generated_at"`
	QAStatus      QAStatus      `json:"qa_status"`
	Request       DigestRequest `json:"request"`
	Cards         []DigestCard  `json:"cards"`
	QANotes       []string      `json:"qa_notes,omitempty"`
}
