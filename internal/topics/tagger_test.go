package topics

import (
	"testing"

	"newsagent/internal/core"
)

func TestTagMatchesKeywords(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		summary string
		want    core.Topic
	}{
		{"tech in title", "New AI breakthrough announced", "", core.TopicTech},
		{"finance in summary", "Morning briefing", "The stock market rallied today.", core.TopicFinance},
		{"health", "New medical study published", "Vaccine results are promising.", core.TopicHealth},
		{"learning", "University opens new campus", "", core.TopicLearning},
		{"multi-word keyword", "Fed weighs interest rate cut", "", core.TopicFinance},
		{"case insensitive", "NVIDIA posts record quarter", "", core.TopicTech},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := Tag(tt.title, tt.summary)
			if !tags[tt.want] {
				t.Errorf("Tag(%q, %q) = %v, expected %s", tt.title, tt.summary, tags, tt.want)
			}
		})
	}
}

func TestTagWordBoundaries(t *testing.T) {
	// "ai" must not match inside "daily" or "airport".
	tags := Tag("Daily airport disruptions continue", "")
	if tags[core.TopicTech] {
		t.Errorf("substring 'ai' should not trigger tech: %v", tags)
	}
	if !tags[core.TopicDaily] {
		t.Errorf("expected daily tag, got %v", tags)
	}
}

func TestTagFallsBackToDaily(t *testing.T) {
	tags := Tag("Quiet afternoon", "Nothing happened.")
	if len(tags) != 1 || !tags[core.TopicDaily] {
		t.Errorf("expected only daily, got %v", tags)
	}
}

func TestTagCanMatchMultipleTopics(t *testing.T) {
	tags := Tag("AI stock rally", "Chip makers lift the market.")
	if !tags[core.TopicTech] || !tags[core.TopicFinance] {
		t.Errorf("expected tech and finance, got %v", tags)
	}
}
