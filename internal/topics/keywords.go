// Package topics tags article candidates with deterministic keyword-based
// topics and filters them against the topics a caller requested.
package topics

import (
	"regexp"

	"newsagent/internal/core"
)

// topicKeywords drives deterministic tagging. A candidate is tagged with a
// topic when any of its keywords appears in the title or summary.
var topicKeywords = map[core.Topic][]string{
	core.TopicTech: {
		"tech", "software", "ai", "artificial intelligence", "google", "apple", "microsoft",
		"semiconductor", "robot", "cloud", "digital", "startup", "developer", "coding", "chip",
		"nvidia", "gpu",
	},
	core.TopicFinance: {
		"finance", "market", "stock", "economy", "fed", "inflation", "banking", "invest",
		"trading", "crypto", "bitcoin", "revenue", "profit", "interest rate",
	},
	core.TopicHealth: {
		"health", "medical", "study", "doctor", "virus", "vaccine", "wellness", "diet",
		"fitness", "cancer", "hospital", "patient", "medicine", "mental health",
	},
	core.TopicLearning: {
		"learn", "learning", "education", "course", "university", "tutorial", "how-to", "student",
		"research", "science", "school", "academy", "knowledge", "skill",
	},
	core.TopicDaily: {
		"news", "today", "daily", "update", "current", "world", "local", "weather",
	},
}

// keywordPatterns holds one compiled word-boundary pattern per keyword, so
// "ai" does not match inside "daily".
var keywordPatterns = compilePatterns()

func compilePatterns() map[core.Topic][]*regexp.Regexp {
	patterns := make(map[core.Topic][]*regexp.Regexp, len(topicKeywords))
	for topic, keywords := range topicKeywords {
		compiled := make([]*regexp.Regexp, 0, len(keywords))
		for _, kw := range keywords {
			compiled = append(compiled, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		patterns[topic] = compiled
	}
	return patterns
}
