package pipeline

import (
	"time"

	"newsagent/internal/core"
)

// FallbackDigest builds the fixed mock digest returned when the real pipeline
// cannot run at all: no feeds matched the request, or every matched feed came
// back empty. It never goes through clustering or the QA gate.
func FallbackDigest(req core.DigestRequest, now time.Time, note string) core.DigestResponse {
	topic := core.TopicDaily
	if len(req.Topics) > 0 {
		topic = req.Topics[0]
	}

	c1 := core.Citation{Publisher: "Mock Publisher", URL: "https://example.com/story-1", PublishedAt: &now}
	c2 := core.Citation{Publisher: "Mock Publisher", URL: "https://example.com/story-2", PublishedAt: &now}

	cards := []core.DigestCard{
		{
			ID:          "mock-1",
			Topic:       topic,
			Headline:    "Mock headline: Example story about the selected topic",
			Publisher:   "Mock Publisher",
			PublishedAt: now,
			Confidence:  core.ConfidenceSingleSource,
			Bullets: []core.Bullet{
				{Text: "Mock bullet 1 with a citation.", Citations: []core.Citation{c1}},
				{Text: "Mock bullet 2 with a citation.", Citations: []core.Citation{c1}},
				{Text: "Mock bullet 3 with a citation.", Citations: []core.Citation{c2}},
			},
			Sources: []core.Citation{c1, c2},
		},
		{
			ID:          "mock-2",
			Topic:       topic,
			Headline:    "Mock headline: Another example story",
			Publisher:   "Mock Publisher",
			PublishedAt: now,
			Confidence:  core.ConfidenceMultiSource,
			Bullets: []core.Bullet{
				{Text: "Mock bullet 1 (multi-source tag for demo).", Citations: []core.Citation{c1, c2}},
				{Text: "Mock bullet 2 (grounded by citations).", Citations: []core.Citation{c2}},
			},
			Sources: []core.Citation{c1, c2},
		},
	}

	return core.DigestResponse{
		SchemaVersion: core.SchemaVersion,
		GeneratedAt:   now,
		QAStatus:      core.QAFallback,
		Request:       req,
		Cards:         cards,
		QANotes:       []string{note},
	}
}
